package prompt

import "carcrafter/internal/catalog"

// PhraseKey addresses one rendered mod phrase. An unknown key renders
// nothing.
type PhraseKey struct {
	Category catalog.CategoryID
	Option   string
}

// Tables holds every static lookup the compiler and the camera view
// selector consult. They are plain values so both stay pure and
// testable with substituted data.
type Tables struct {
	// Phrases maps (category, option) to the rendered instruction.
	// Each phrase carries its own negative guard so the image model is
	// told what to leave alone in the same breath.
	Phrases map[PhraseKey]string

	// Colors maps a normalized color token to a paint description.
	// Unmapped tokens pass through raw.
	Colors map[string]string

	BlackoutKeywords []string
	RearKeywords     []string

	TintKeywords  []string
	WheelKeywords []string
	PaintKeywords []string
	LiftKeywords  []string
	LowerKeywords []string
}

func DefaultTables() Tables {
	return Tables{
		Phrases: map[PhraseKey]string{
			{catalog.Tint, "5"}:  "5% limo tint on side windows and rear glass (only glass, no body panels changed)",
			{catalog.Tint, "20"}: "20% dark tint on side windows and rear glass (only glass, no body panels changed)",
			{catalog.Tint, "35"}: "35% medium tint on side windows and rear glass (only glass, no body panels changed)",
			{catalog.Tint, "50"}: "50% light tint on side windows and rear glass (only glass, no body panels changed)",
			{catalog.Tint, "75"}: "75% very light tint on side windows and rear glass (only glass, no body panels changed)",

			{catalog.Wheels, "black_gloss"}: "gloss black wheels (only wheel finish, keep wheel size and tire size identical)",
			{catalog.Wheels, "black_matte"}: "matte black wheels (only wheel finish, keep wheel size and tire size identical)",
			{catalog.Wheels, "silver"}:      "bright silver / OEM-style wheels (only wheel finish, keep wheel size and tire size identical)",
			{catalog.Wheels, "chrome"}:      "high-shine chrome wheels (only wheel finish, keep wheel size and tire size identical)",

			{catalog.Spoiler, "lip"}:      "small trunk lip spoiler (keep trunk shape the same, just add spoiler)",
			{catalog.Spoiler, "ducktail"}: "aggressive ducktail trunk spoiler (keep trunk shape the same, just add spoiler)",

			{catalog.ChromeDelete, "gloss"}: "gloss black chrome delete on window trim (only chrome trim, do not darken body color)",
			{catalog.ChromeDelete, "satin"}: "satin black chrome delete on window trim (only chrome trim, do not darken body color)",
			{catalog.ChromeDelete, "matte"}: "matte black chrome delete on window trim (only chrome trim, do not darken body color)",

			{catalog.Carbon, "hood_gloss"}:     "only the front hood panel converted to a glossy carbon-fiber hood with visible weave; do NOT change the trunk, roof, doors, bumpers, fenders, wheels, or glass",
			{catalog.Carbon, "trunk_gloss"}:    "only the trunk/boot lid converted to glossy carbon fiber with visible weave; do NOT change the hood, roof, doors, bumpers, wheels, or glass",
			{catalog.Carbon, "roof_gloss"}:     "only the roof panel between the pillars converted to glossy carbon fiber; do NOT change the hood, trunk, doors, bumpers, wheels, or glass",
			{catalog.Carbon, "mirrors_gloss"}:  "only the side mirror housings converted to glossy carbon fiber; keep mirror glass and surrounding panels untouched",
			{catalog.Carbon, "frontlip_gloss"}: "only the front lower lip/spoiler changed to glossy carbon fiber, following the current bumper shape; do NOT change bumper color, grille, or wheels",
			{catalog.Carbon, "diffuser_gloss"}: "only the rear diffuser area around the exhaust converted to glossy carbon fiber; do NOT change the upper bumper, trunk, taillights, or exhaust tips",
			{catalog.Carbon, "spoiler_gloss"}:  "only the rear spoiler converted to glossy carbon fiber; keep trunk panel, taillights, and bumper identical",

			{catalog.Suspension, "stock"}:     "factory stock ride height (no lowering, normal fender gap, no extra camber). Do not change wheel diameter or tire profile; only adjust suspension height and subtle camber if appropriate.",
			{catalog.Suspension, "springs"}:   "lowered approximately 1-1.5 inches using lowering springs (mild drop, daily-drivable stance, slight tire-to-fender gap). Do not change wheel diameter or tire profile; only adjust suspension height and subtle camber if appropriate.",
			{catalog.Suspension, "coilovers"}: "lowered approximately 2-3 inches on adjustable coilovers with a sporty street stance and tight but realistic fender gap. Do not change wheel diameter or tire profile; only adjust suspension height and subtle camber if appropriate.",
			{catalog.Suspension, "slammed"}:   "very low \"slammed\" show-car stance with minimal fender gap, wheels sitting very close to the fender while still looking realistic. Do not change wheel diameter or tire profile; only adjust suspension height and subtle camber if appropriate.",

			{catalog.Spacers, "mild"}:       "subtle wheel spacers that push each wheel slightly outward for a mild flush look. Keep tire width and sidewall realistic; do not exaggerate poke or stretch beyond believable street fitment.",
			{catalog.Spacers, "flush"}:      "wheel spacers that push each wheel out to be nearly flush with the fenders for a strong stance. Keep tire width and sidewall realistic; do not exaggerate poke or stretch beyond believable street fitment.",
			{catalog.Spacers, "aggressive"}: "aggressive wheel spacers that push the wheels close to the fender edge, with slight poke but still realistic. Keep tire width and sidewall realistic; do not exaggerate poke or stretch beyond believable street fitment.",
		},
		Colors: map[string]string{
			"black":       "solid glossy black paint",
			"white":       "clean solid white paint",
			"silver/grey": "metallic silver/grey paint",
			"blue":        "deep blue paint",
			"red":         "bright red paint",
		},
		BlackoutKeywords: []string{
			"black out everything",
			"blackout everything",
			"black out",
			"blackout",
			"murdered out",
			"murdered-out",
			"all black",
			"full blackout",
			"full black out",
			"stealth look",
		},
		RearKeywords: []string{
			"diffuser",
			"rear bumper",
			"rear lip",
			"rear valence",
			"trunk",
			"spoiler",
			"ducktail",
			"exhaust",
			"muffler",
			"tail light",
			"taillight",
			"tail lights",
			"rear lights",
		},
		TintKeywords:  []string{"tint", "tinted", "window tint"},
		WheelKeywords: []string{"wheel", "wheels", "rim", "rims"},
		PaintKeywords: []string{"paint", "color", "colour"},
		LiftKeywords:  []string{"lift", "lifted", "raise", "raised"},
		LowerKeywords: []string{"lower", "dropped", "drop"},
	}
}
