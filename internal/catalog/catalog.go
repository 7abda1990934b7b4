package catalog

type CategoryID string

const (
	Tint         CategoryID = "tint"
	Wheels       CategoryID = "wheels"
	Spoiler      CategoryID = "spoiler"
	ChromeDelete CategoryID = "chrome_delete"
	Carbon       CategoryID = "carbon"
	Suspension   CategoryID = "suspension"
	Spacers      CategoryID = "spacers"
)

type Option struct {
	ID    string
	Label string
}

type Category struct {
	ID          CategoryID
	Label       string
	Description string
	Options     []Option
}

var categoryOrder = []CategoryID{
	Tint,
	Wheels,
	Spoiler,
	ChromeDelete,
	Carbon,
	Suspension,
	Spacers,
}

var categories = map[CategoryID]Category{
	Tint: {
		ID:          Tint,
		Label:       "Window Tint",
		Description: "Darken your side and rear windows.",
		Options: []Option{
			{ID: "5", Label: "5% (limo)"},
			{ID: "20", Label: "20% (dark)"},
			{ID: "35", Label: "35% (medium)"},
			{ID: "50", Label: "50% (light)"},
			{ID: "75", Label: "75% (very light)"},
		},
	},
	Wheels: {
		ID:          Wheels,
		Label:       "Wheels",
		Description: "Change the style/color of your wheels.",
		Options: []Option{
			{ID: "black_gloss", Label: "Black (gloss)"},
			{ID: "black_matte", Label: "Black (matte)"},
			{ID: "silver", Label: "Silver / OEM"},
			{ID: "chrome", Label: "Chrome (high-shine)"},
		},
	},
	Spoiler: {
		ID:          Spoiler,
		Label:       "Spoiler",
		Description: "Add a lip or ducktail spoiler.",
		Options: []Option{
			{ID: "lip", Label: "Small lip"},
			{ID: "ducktail", Label: "Ducktail"},
		},
	},
	ChromeDelete: {
		ID:          ChromeDelete,
		Label:       "Chrome Delete",
		Description: "Black out your chrome trim.",
		Options: []Option{
			{ID: "gloss", Label: "Gloss black"},
			{ID: "satin", Label: "Satin black"},
			{ID: "matte", Label: "Matte black"},
		},
	},
	Carbon: {
		ID:          Carbon,
		Label:       "Carbon Parts",
		Description: "Add carbon fiber to specific panels.",
		Options: []Option{
			{ID: "hood_gloss", Label: "Carbon hood (gloss)"},
			{ID: "trunk_gloss", Label: "Carbon trunk (gloss)"},
			{ID: "roof_gloss", Label: "Carbon roof (gloss)"},
			{ID: "mirrors_gloss", Label: "Carbon mirrors"},
			{ID: "frontlip_gloss", Label: "Carbon front lip"},
			{ID: "diffuser_gloss", Label: "Carbon rear diffuser"},
			{ID: "spoiler_gloss", Label: "Carbon spoiler"},
		},
	},
	Suspension: {
		ID:          Suspension,
		Label:       "Ride Height",
		Description: "Lower the car for a better stance.",
		Options: []Option{
			{ID: "stock", Label: "Stock height"},
			{ID: "springs", Label: "Lowering springs (-1\" to -1.5\")"},
			{ID: "coilovers", Label: "Coilovers (-2\" to -3\")"},
			{ID: "slammed", Label: "Slammed / show car"},
		},
	},
	Spacers: {
		ID:          Spacers,
		Label:       "Spacers",
		Description: "Push wheels outward for a flush fitment.",
		Options: []Option{
			{ID: "mild", Label: "Mild (5-8mm, subtle flush)"},
			{ID: "flush", Label: "Flush (10-15mm, aggressive street)"},
			{ID: "aggressive", Label: "Aggressive (20mm+, show stance)"},
		},
	},
}

// Categories returns every modification category in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryOrder))
	for _, id := range categoryOrder {
		out = append(out, cloneCategory(categories[id]))
	}
	return out
}

func Lookup(id CategoryID) (Category, bool) {
	cat, ok := categories[id]
	if !ok {
		return Category{}, false
	}
	return cloneCategory(cat), true
}

// ValidOption reports whether optionID is one of the category's declared
// options.
func ValidOption(id CategoryID, optionID string) bool {
	cat, ok := categories[id]
	if !ok {
		return false
	}
	for _, opt := range cat.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Selection is the per-category user choice. A disabled selection
// contributes nothing to the compiled prompt regardless of OptionID.
type Selection struct {
	Enabled  bool
	OptionID string
}

type Selections map[CategoryID]Selection

// EmptySelections returns a selection set with every category disabled.
func EmptySelections() Selections {
	out := make(Selections, len(categoryOrder))
	for _, id := range categoryOrder {
		out[id] = Selection{}
	}
	return out
}

func (s Selections) AnyEnabled() bool {
	for _, sel := range s {
		if sel.Enabled {
			return true
		}
	}
	return false
}

// Enabled returns the selected option for a category, or false when the
// category is disabled or the option is not one the category declares.
func (s Selections) Enabled(id CategoryID) (string, bool) {
	sel, ok := s[id]
	if !ok || !sel.Enabled || sel.OptionID == "" {
		return "", false
	}
	if !ValidOption(id, sel.OptionID) {
		return "", false
	}
	return sel.OptionID, true
}

func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for id, sel := range s {
		out[id] = sel
	}
	return out
}

func cloneCategory(cat Category) Category {
	cat.Options = append([]Option(nil), cat.Options...)
	return cat
}
