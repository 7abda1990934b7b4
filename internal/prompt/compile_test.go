package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcrafter/internal/catalog"
)

func newCompiler(t *testing.T) *Compiler {
	t.Helper()
	return New(DefaultTables())
}

func TestDisabledCategoriesRenderNothing(t *testing.T) {
	c := newCompiler(t)
	tables := DefaultTables()

	mods := catalog.EmptySelections()
	for _, cat := range catalog.Categories() {
		mods[cat.ID] = catalog.Selection{Enabled: false, OptionID: cat.Options[0].ID}
	}

	out := c.Compile(Input{FreeText: "make it look nice", Mods: mods}, ModeApplyMods)

	for key, phrase := range tables.Phrases {
		assert.NotContains(t, out, phrase, "disabled %s/%s must not render", key.Category, key.Option)
	}
}

func TestEnabledModsRenderInCatalogOrder(t *testing.T) {
	c := newCompiler(t)

	mods := catalog.EmptySelections()
	mods[catalog.Spacers] = catalog.Selection{Enabled: true, OptionID: "flush"}
	mods[catalog.Tint] = catalog.Selection{Enabled: true, OptionID: "20"}

	out := c.Compile(Input{Mods: mods, FreeText: "x"}, ModeApplyMods)

	tintIdx := strings.Index(out, "20% dark tint")
	spacerIdx := strings.Index(out, "wheel spacers that push each wheel out")
	require.GreaterOrEqual(t, tintIdx, 0)
	require.GreaterOrEqual(t, spacerIdx, 0)
	assert.Less(t, tintIdx, spacerIdx, "phrases follow catalog display order")
}

func TestUnknownOptionRendersNothing(t *testing.T) {
	c := newCompiler(t)

	mods := catalog.EmptySelections()
	mods[catalog.Wheels] = catalog.Selection{Enabled: true, OptionID: "spinner"}

	out := c.Compile(Input{Mods: mods, FreeText: "x"}, ModeApplyMods)
	assert.NotContains(t, out, "wheels (only wheel finish")
}

func TestBlackoutOverridesSelectedColor(t *testing.T) {
	c := newCompiler(t)

	for _, text := range []string{
		"blackout everything please",
		"I want it MURDERED OUT",
		"give me that stealth look",
	} {
		out := c.Compile(Input{
			FreeText: text,
			Vehicle:  Vehicle{Color: "red"},
		}, ModeEditUpload)
		assert.Contains(t, out, blackoutPaint, "free text %q", text)
		assert.NotContains(t, out, "bright red paint")
	}
}

func TestNoColorEmitsPreservePaint(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{FreeText: "add a spoiler"}, ModeEditUpload)
	assert.Contains(t, out, preservePaint)
}

func TestExplicitColorMapsThroughTable(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{FreeText: "x", Vehicle: Vehicle{Color: "blue"}}, ModeEditUpload)
	assert.Contains(t, out, "Paint color: deep blue paint.")

	// silver normalizes to the silver/grey table key
	out = c.Compile(Input{FreeText: "x", Vehicle: Vehicle{Color: "Silver"}}, ModeEditUpload)
	assert.Contains(t, out, "Paint color: metallic silver/grey paint.")

	// unmapped tokens pass through raw
	out = c.Compile(Input{FreeText: "x", Vehicle: Vehicle{Color: "nardo grey"}}, ModeEditUpload)
	assert.Contains(t, out, "Paint color: nardo grey.")
}

func TestTintOnlyIsolation(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{FreeText: "tint my windows 20%"}, ModeEditUpload)
	assert.Contains(t, out, tintOnlyClause)
	assert.Contains(t, out, paintLockClause, "paint never mentioned, lock applies")
	assert.NotContains(t, out, wheelsClause)
}

func TestTintWithWheelsDropsTintOnlyClause(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{FreeText: "tint the windows and add black wheels"}, ModeEditUpload)
	assert.NotContains(t, out, tintOnlyClause)
	assert.Contains(t, out, wheelsClause)
}

func TestPaintMentionDropsPaintLock(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{FreeText: "repaint it in a new color"}, ModeEditUpload)
	assert.NotContains(t, out, paintLockClause)
}

func TestLiftLowerClause(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{FreeText: "lower it a bit"}, ModeEditUpload)
	assert.Contains(t, out, liftLowerClause)

	out = c.Compile(Input{FreeText: "lifted truck stance"}, ModeEditUpload)
	assert.Contains(t, out, liftLowerClause)
}

func TestGlobalRulesAlwaysPresent(t *testing.T) {
	c := newCompiler(t)

	for _, mode := range []Mode{ModeStock, ModeApplyMods, ModeEditUpload} {
		out := c.Compile(Input{FreeText: "x"}, mode)
		assert.Contains(t, out, globalRules)
	}
}

func TestModePreambles(t *testing.T) {
	c := newCompiler(t)

	stock := c.Compile(Input{}, ModeStock)
	assert.True(t, strings.HasPrefix(stock, generatePreamble))

	edit := c.Compile(Input{FreeText: "x"}, ModeEditUpload)
	assert.True(t, strings.HasPrefix(edit, editPreamble))
}

func TestQualityAppendIsLast(t *testing.T) {
	c := newCompiler(t)

	ultra := c.Compile(Input{FreeText: "x", Quality: QualityUltra}, ModeEditUpload)
	assert.True(t, strings.HasSuffix(ultra, qualityUltraAppend))

	standard := c.Compile(Input{FreeText: "x", Quality: QualityStandard}, ModeEditUpload)
	assert.True(t, strings.HasSuffix(standard, qualityStandardAppend))
}

func TestStockPromptHasNoModText(t *testing.T) {
	c := newCompiler(t)

	mods := catalog.EmptySelections()
	mods[catalog.Wheels] = catalog.Selection{Enabled: true, OptionID: "chrome"}

	out := c.Compile(Input{
		FreeText: "chrome wheels please",
		Mods:     mods,
		Vehicle:  Vehicle{Make: "Honda", Model: "Civic", Year: "2020"},
	}, ModeStock)

	assert.Contains(t, out, "Ultra-realistic stock photo of a 2020 Honda Civic")
	assert.Contains(t, out, "no aftermarket mods")
	assert.NotContains(t, out, "chrome wheels please")
	assert.NotContains(t, out, "high-shine chrome wheels")
}

func TestVehicleDescription(t *testing.T) {
	assert.Equal(t, "2020 Honda Civic", Vehicle{Make: "Honda", Model: "Civic", Year: "2020"}.Description())
	assert.Equal(t, "Honda Civic", Vehicle{Make: "Honda", Model: "Civic"}.Description())
	assert.Equal(t, "Honda", Vehicle{Make: "Honda"}.Description())
	assert.Equal(t, "", Vehicle{}.Description())
}

func TestDefaultModsFallback(t *testing.T) {
	c := newCompiler(t)

	out := c.Compile(Input{}, ModeEditUpload)
	assert.Contains(t, out, defaultUploadMods)

	out = c.Compile(Input{FreeText: "slam it"}, ModeEditUpload)
	assert.NotContains(t, out, defaultUploadMods)

	out = c.Compile(Input{}, ModeApplyMods)
	assert.Contains(t, out, defaultStockMods)
}

func TestCompileIsDeterministic(t *testing.T) {
	c := newCompiler(t)

	mods := catalog.EmptySelections()
	mods[catalog.Wheels] = catalog.Selection{Enabled: true, OptionID: "chrome"}
	mods[catalog.Spoiler] = catalog.Selection{Enabled: true, OptionID: "ducktail"}
	in := Input{FreeText: "tint it", Mods: mods, Vehicle: Vehicle{Make: "Subaru", Model: "WRX"}}

	first := c.Compile(in, ModeApplyMods)
	second := c.Compile(in, ModeApplyMods)
	assert.Equal(t, first, second)
}
