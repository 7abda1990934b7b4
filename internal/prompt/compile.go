package prompt

import (
	"strings"

	"carcrafter/internal/catalog"
)

type Quality string

const (
	QualityStandard Quality = "standard"
	QualityUltra    Quality = "ultra"
)

// Mode selects which instruction template the compiler assembles.
type Mode int

const (
	// ModeStock generates a baseline render of the vehicle with no
	// modifications applied (phase 1 of the two-step builder flow).
	ModeStock Mode = iota
	// ModeApplyMods edits a previously generated stock image.
	ModeApplyMods
	// ModeEditUpload edits a photo the user supplied.
	ModeEditUpload
)

// Vehicle enriches prompt text. It is never validated against the mod
// catalog.
type Vehicle struct {
	Make  string
	Model string
	Year  string
	Color string
}

// Description renders "2020 Honda Civic" style text, degrading to
// whatever fields are present.
func (v Vehicle) Description() string {
	switch {
	case v.Make != "" && v.Model != "" && v.Year != "":
		return v.Year + " " + v.Make + " " + v.Model
	case v.Make != "" && v.Model != "":
		return v.Make + " " + v.Model
	default:
		return v.Make
	}
}

type Input struct {
	FreeText string
	Mods     catalog.Selections
	Vehicle  Vehicle
	Quality  Quality
	View     CameraView
}

// The global rule block is appended to every instruction regardless of
// input. Later sentences carry more weight with the image model, so the
// most specific user-chosen constraints are assembled after it.
const globalRules = `Rules:
- Only modify features explicitly mentioned by the user.
- WINDOW TINT: Only darken the transparent glass window areas. Do NOT change the overall brightness, contrast, or color of the entire image. Do NOT desaturate or make the whole image darker. Do NOT touch wheels, paint, trim, headlights, taillights, road, sky, or background when doing tint.
- WHEELS / RIMS: Only modify the wheels and tires (design, size, color, finish). Do NOT change paint color, ride height, windows, or background unless asked.
- LIFT / LOWER / DROP: Only adjust suspension/ride height. Keep wheels, paint, windows, and environment unchanged unless requested.
- BODY COLOR: Keep the original body paint color exactly the same unless the user clearly asks for a paint color change.
- GLOBAL CHANGES: Never convert the whole image to black & white. Never apply global exposure, brightness, contrast, or color filters unless the user clearly asks for that effect.
- ENVIRONMENT: Maintain the original environment, background, and lighting unless the user explicitly says to change them.`

const (
	editPreamble     = "You are editing a real photo of a car. Follow these rules strictly."
	generatePreamble = "Generate a photorealistic image of a car that follows these rules strictly."

	paintLockClause = "Keep the original body paint color exactly the same unless I explicitly ask to change the paint."
	tintOnlyClause  = "Apply tint ONLY to the glass window areas. Do not change the wheels, tires, body color, paint, trim, headlights, taillights, background, lighting, or the overall color tone of the image."
	wheelsClause    = "When changing the wheels or rims, modify ONLY the wheels and tires (design, size, color, finish). Keep windows, body color, ride height, and background exactly the same unless I explicitly ask otherwise."
	liftLowerClause = "When lifting or lowering the vehicle, change ONLY the suspension/ride height. Do not change wheels, paint, windows, or background unless explicitly requested."

	blackoutPaint = "Paint the entire car in solid glossy or satin black (full blackout / murdered-out look), including all visible body panels, while keeping realistic reflections and panel definition."
	preservePaint = "Keep the car's paint color consistent with the original image or stock render. Do not recolor the body unless the user explicitly asks for a different color."

	qualityUltraAppend    = "Extra focus on sharp details, realistic reflections in paint and glass, clean panel gaps, and subtle film-like grain for a true-photo look."
	qualityStandardAppend = "Keep everything looking like a real photo, not a render or cartoon."

	defaultUploadMods = "lowered stance, mild aero, tasteful wheels, and tint that look factory-plus, not overdone."
	defaultStockMods  = "clean OEM+ style mods that improve stance and presence while staying realistic."
)

type Compiler struct {
	tables Tables
}

func New(tables Tables) *Compiler {
	return &Compiler{tables: tables}
}

// Compile assembles the single instruction string sent verbatim to the
// image service: mode preamble and global rules first, then the user
// request with its inferred isolation clauses, then the structured mod
// phrases, then the closing quality directive.
func (c *Compiler) Compile(in Input, mode Mode) string {
	if in.View == "" {
		in.View = FrontThreeQuarter
	}

	var b strings.Builder
	b.Grow(2048)

	if mode == ModeStock {
		b.WriteString(generatePreamble)
	} else {
		b.WriteString(editPreamble)
	}
	b.WriteString("\n")
	b.WriteString(globalRules)

	b.WriteString("\nUser request: ")
	b.WriteString(c.requestBlock(in, mode))

	if mode != ModeStock {
		b.WriteString("\n")
		b.WriteString(c.modificationsBlock(in, mode))
	}

	b.WriteString("\n")
	if in.Quality == QualityUltra {
		b.WriteString(qualityUltraAppend)
	} else {
		b.WriteString(qualityStandardAppend)
	}

	return strings.TrimSpace(b.String())
}

func (c *Compiler) requestBlock(in Input, mode Mode) string {
	var lines []string

	desc := in.Vehicle.Description()
	color := c.colorInstruction(in.FreeText, in.Vehicle.Color)

	switch mode {
	case ModeStock:
		subject := desc
		if subject == "" {
			subject = "modern car"
		}
		lines = []string{
			"Ultra-realistic stock photo of a " + subject + " in " + in.View.Fragment() + ".",
			"Factory ride height, factory bodywork, OEM wheels, no aftermarket mods.",
			"Clean real-world background and lighting.",
			color,
			"Do not add tint, body kits, aftermarket wheels, or other modifications.",
			"No random text, fake brand names, or watermarks in the image.",
		}

	case ModeApplyMods:
		carLine := "Ultra-realistic photo of the same car as the previous stock image"
		if desc != "" {
			carLine = "Ultra-realistic photo of the same " + desc + " as the previous stock image"
		}
		lines = []string{
			carLine + ", in " + in.View.Fragment() + ".",
			"Keep the same generation, general body shape, wheel and tire sizes, and a very similar background and lighting as the stock image.",
			"Only modify the specific parts mentioned in the modifications list below; keep all other body panels, lights, and glass identical to the original stock image.",
			"If a requested carbon panel is not clearly visible from this camera angle, leave that panel and surrounding bodywork completely unchanged.",
			color,
			"Do not change the car into a different model or year. Do not switch to a radically different camera angle.",
			"Preserve realistic manufacturer-style badging and logos; do NOT invent nonsense words or random text on the car.",
			"Do NOT add any extra text overlays, watermarks, or additional cars in the scene.",
		}

	case ModeEditUpload:
		carLine := "Edit the uploaded photo of the car."
		if desc != "" {
			carLine = "Edit the uploaded photo of a " + desc + "."
		}
		lines = []string{
			"Ultra-realistic photo edit of the SAME car as in the uploaded image.",
			carLine,
			"Keep the exact same camera angle and composition as the original photo.",
			"Preserve the same generation, body shape, panel gaps, reflections, shadows, wheel and tire sizes, and background.",
			"Only modify the specific parts mentioned in the modifications list below; keep all other body panels, lights, and glass identical to the original.",
			"If a requested part is not visible in the frame (for example the hood in a pure rear view), leave that part and all surrounding panels completely unchanged instead of guessing.",
			color,
			"Do NOT change the car into a different model or year.",
			"Preserve all manufacturer and model logos, emblems, and badges EXACTLY as they appear in the original photo.",
			"Do NOT invent, alter, or hallucinate any text, numbers, or lettering on the car, license plate, or background.",
			"Do NOT add extra cars, people, watermarks, stickers, or text overlays.",
		}
	}

	if mode != ModeStock {
		if text := strings.TrimSpace(in.FreeText); text != "" {
			lines = append(lines, text)
		}
		lines = append(lines, c.isolationClauses(in.FreeText)...)
	}

	return squash(strings.Join(lines, " "))
}

// isolationClauses scans the free-text request for topic markers and
// appends a containment sentence per topic found. The matching is plain
// case-insensitive substring search, so "don't tint" still counts as a
// tint mention; that ambiguity is inherited on purpose.
func (c *Compiler) isolationClauses(freeText string) []string {
	lower := strings.ToLower(freeText)

	mentionsTint := containsAny(lower, c.tables.TintKeywords)
	mentionsWheels := containsAny(lower, c.tables.WheelKeywords)
	mentionsPaint := containsAny(lower, c.tables.PaintKeywords)
	mentionsLift := containsAny(lower, c.tables.LiftKeywords)
	mentionsLower := containsAny(lower, c.tables.LowerKeywords)

	var out []string
	if mentionsTint && !mentionsWheels && !mentionsPaint {
		out = append(out, tintOnlyClause)
	}
	if mentionsWheels {
		out = append(out, wheelsClause)
	}
	if !mentionsPaint {
		out = append(out, paintLockClause)
	}
	if mentionsLift || mentionsLower {
		out = append(out, liftLowerClause)
	}
	return out
}

// colorInstruction resolves the three-way color policy: blackout intent
// in the free text wins over any selected color, no selection locks the
// paint, and an explicit selection maps through the color table with
// raw passthrough for unknown tokens.
func (c *Compiler) colorInstruction(freeText, color string) string {
	lower := strings.ToLower(freeText)
	if containsAny(lower, c.tables.BlackoutKeywords) {
		return blackoutPaint
	}
	if color == "" {
		return preservePaint
	}

	normalized := strings.ToLower(color)
	if normalized == "silver" {
		normalized = "silver/grey"
	}
	desc, ok := c.tables.Colors[normalized]
	if !ok {
		desc = color
	}
	return "Paint color: " + desc + ". Do not change it unless the user explicitly asks for a different color."
}

func (c *Compiler) modificationsBlock(in Input, mode Mode) string {
	phrases := c.renderMods(in.Mods)
	joined := strings.Join(phrases, ", ")

	if mode == ModeEditUpload {
		if joined == "" && strings.TrimSpace(in.FreeText) == "" {
			return "Apply subtle OEM+ style street mods that suit this car: " + defaultUploadMods
		}
		if joined == "" {
			return "Apply EXACTLY the modifications described in the request above (no additional changes)."
		}
		return "Apply EXACTLY these modifications (no additional changes): " + joined + "."
	}

	suffix := " Mods can include suspension changes, wheels, spoilers, splitters, diffusers, carbon panels, side skirts, exhaust tips, and other realistic parts that are explicitly described in the text."
	if joined == "" && strings.TrimSpace(in.FreeText) == "" {
		return "Apply EXACTLY these modifications (no extra mods beyond this list): " + defaultStockMods + suffix
	}
	if joined == "" {
		return "Apply EXACTLY the modifications described in the request above (no extra mods beyond this list)." + suffix
	}
	return "Apply EXACTLY these modifications (no extra mods beyond this list): " + joined + "." + suffix
}

// renderMods turns enabled selections into phrases via the lookup
// table, in catalog display order. Unknown (category, option) pairs
// render nothing.
func (c *Compiler) renderMods(mods catalog.Selections) []string {
	if mods == nil {
		return nil
	}
	var out []string
	for _, cat := range catalog.Categories() {
		optionID, ok := mods.Enabled(cat.ID)
		if !ok {
			continue
		}
		phrase, ok := c.tables.Phrases[PhraseKey{Category: cat.ID, Option: optionID}]
		if !ok {
			continue
		}
		out = append(out, phrase)
	}
	return out
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
