package catalog

type PackID string

const (
	PackOEMPlus       PackID = "oem_plus"
	PackSlammed       PackID = "slammed"
	PackTrack         PackID = "track"
	PackStreetMonster PackID = "street_monster"
)

// Pack is a preset bundle of mod selections with a seed description the
// caller can drop into the free-text field.
type Pack struct {
	ID       PackID
	Label    string
	Preset   map[CategoryID]string
	SeedText string
}

var packOrder = []PackID{PackOEMPlus, PackSlammed, PackTrack, PackStreetMonster}

var packs = map[PackID]Pack{
	PackOEMPlus: {
		ID:    PackOEMPlus,
		Label: "OEM+",
		Preset: map[CategoryID]string{
			Tint:       "35",
			Suspension: "springs",
			Spacers:    "mild",
			Spoiler:    "lip",
			Wheels:     "silver",
		},
		SeedText: "OEM+ daily build: mild drop on springs, subtle tint, silver wheels, small lip spoiler. Clean, factory-plus look.",
	},
	PackSlammed: {
		ID:    PackSlammed,
		Label: "Slammed",
		Preset: map[CategoryID]string{
			Tint:         "5",
			Suspension:   "slammed",
			Spacers:      "aggressive",
			Spoiler:      "ducktail",
			Wheels:       "chrome",
			ChromeDelete: "gloss",
		},
		SeedText: "Full slammed street build: 5% tint, ultra low stance, aggressive spacers, fancy wheels, maybe some carbon bits. Make it look like a clean but wild show car that still feels realistic.",
	},
	PackTrack: {
		ID:    PackTrack,
		Label: "Track",
		Preset: map[CategoryID]string{
			Tint:       "50",
			Suspension: "coilovers",
			Spacers:    "flush",
			Wheels:     "silver",
			Spoiler:    "lip",
		},
		SeedText: "Track-ready setup: functional coilover height, flush spacers, light tint, subtle aero that looks like it belongs at a time-attack event.",
	},
	PackStreetMonster: {
		ID:    PackStreetMonster,
		Label: "Street Monster",
		Preset: map[CategoryID]string{
			Tint:         "5",
			Suspension:   "coilovers",
			Spacers:      "aggressive",
			Wheels:       "black_gloss",
			Spoiler:      "ducktail",
			ChromeDelete: "satin",
			Carbon:       "frontlip_gloss",
		},
		SeedText: "Loud street monster: low, aggressive stance, 5% tint, aggressive spacers, black or chrome wheels, and bold aero that turns heads at night.",
	},
}

func Packs() []Pack {
	out := make([]Pack, 0, len(packOrder))
	for _, id := range packOrder {
		out = append(out, clonePack(packs[id]))
	}
	return out
}

func LookupPack(id PackID) (Pack, bool) {
	p, ok := packs[id]
	if !ok {
		return Pack{}, false
	}
	return clonePack(p), true
}

// Apply enables every category the pack presets, leaving other
// selections as they were.
func (p Pack) Apply(sel Selections) Selections {
	out := sel.Clone()
	for id, optionID := range p.Preset {
		out[id] = Selection{Enabled: true, OptionID: optionID}
	}
	return out
}

func clonePack(p Pack) Pack {
	preset := make(map[CategoryID]string, len(p.Preset))
	for id, opt := range p.Preset {
		preset[id] = opt
	}
	p.Preset = preset
	return p
}
