package models

// School is an immutable reference entity. It scopes customers, products and
// orders as a grouping dimension, not a security boundary.
type School struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateSchoolRequest represents the request body for creating a school
// Example: {"name": "Municipal"}
type CreateSchoolRequest struct {
	Name string `json:"name"`
}

// SchoolConfig carries the preferred size/color subsets of a school, used
// only to filter catalog choices in the UI.
type SchoolConfig struct {
	PreferredSizes  []string `json:"preferredSizes"`
	PreferredColors []string `json:"preferredColors"`
}

// SchoolListResponse represents the response for listing schools with their
// size/color configuration
type SchoolListResponse struct {
	Schools []SchoolWithConfig `json:"schools"`
}

// SchoolWithConfig is a school plus its configured size/color subsets
type SchoolWithConfig struct {
	School
	Config SchoolConfig `json:"config"`
}

// Size vocabulary. Children's sizes are numeric, adult sizes are letters.
var (
	SizesInfantil = []string{"2", "4", "6", "8", "10", "12"}
	SizesAdulto   = []string{"PP", "P", "M", "G", "GG"}
)

// AllSizes returns the full size vocabulary, children first.
func AllSizes() []string {
	sizes := make([]string, 0, len(SizesInfantil)+len(SizesAdulto))
	sizes = append(sizes, SizesInfantil...)
	sizes = append(sizes, SizesAdulto...)
	return sizes
}

// schoolConfigs maps school names to their preferred sizes and colors.
// Schools without an entry fall back to the full vocabulary.
var schoolConfigs = map[string]SchoolConfig{
	"Municipal": {
		PreferredSizes:  []string{"2", "4", "6", "8", "10", "12", "P", "M", "G", "GG"},
		PreferredColors: []string{"Branco", "Azul Marinho", "Cinza"},
	},
	"Desperta": {
		PreferredSizes:  []string{"2", "4", "6", "8", "10", "12", "PP"},
		PreferredColors: []string{"Branco", "Verde", "Preto"},
	},
	"São Tadeu": {
		PreferredSizes:  []string{"2", "4", "6", "8", "10", "12", "P"},
		PreferredColors: []string{"Branco", "Vermelho", "Azul Royal"},
	},
}

// ConfigForSchool returns the size/color configuration for a school name.
func ConfigForSchool(name string) SchoolConfig {
	if cfg, ok := schoolConfigs[name]; ok {
		return cfg
	}
	return SchoolConfig{PreferredSizes: AllSizes()}
}

// ValidSize reports whether size belongs to the vocabulary.
func ValidSize(size string) bool {
	for _, s := range AllSizes() {
		if s == size {
			return true
		}
	}
	return false
}
