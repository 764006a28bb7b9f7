package progress

import "fmt"

// Category is one of the four life areas a goal or XP award belongs to.
// The integer value is the stable index used by every per-category array.
type Category int

const (
	Mind Category = iota
	Body
	Spirit
	Accountability
)

// NumCategories is the fixed slot count of every per-category array.
const NumCategories = 4

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{Mind, Body, Spirit, Accountability}
}

func (c Category) String() string {
	switch c {
	case Mind:
		return "Mind"
	case Body:
		return "Body"
	case Spirit:
		return "Spirit"
	case Accountability:
		return "Accountability"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Valid reports whether c is one of the four defined categories.
func (c Category) Valid() bool {
	return c >= Mind && c < NumCategories
}

// ParseCategory maps a category name back to its index.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories() {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category: %q", s)
}

// MarshalText serializes the category by name so persisted goals stay
// readable in storage.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category index: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
