package prompt

import (
	"strings"

	"carcrafter/internal/catalog"
)

type CameraView string

const (
	FrontThreeQuarter CameraView = "front_3_4"
	RearThreeQuarter  CameraView = "rear_3_4"
)

func (v CameraView) Fragment() string {
	if v == RearThreeQuarter {
		return "3/4 rear view, single car centered in frame"
	}
	return "3/4 front view, single car centered in frame"
}

// SelectCameraView picks the angle that keeps the requested part
// visible. First match wins: panel-specific carbon rules outrank the
// generic spoiler bias, which outranks keyword sniffing, which outranks
// the front default.
func (c *Compiler) SelectCameraView(freeText string, mods catalog.Selections) CameraView {
	text := strings.ToLower(freeText)

	if optionID, ok := mods.Enabled(catalog.Carbon); ok {
		switch optionID {
		case "hood_gloss":
			return FrontThreeQuarter
		case "trunk_gloss", "diffuser_gloss", "spoiler_gloss":
			return RearThreeQuarter
		}
	}

	if mods != nil && mods[catalog.Spoiler].Enabled {
		return RearThreeQuarter
	}

	if containsAny(text, c.tables.RearKeywords) {
		return RearThreeQuarter
	}

	return FrontThreeQuarter
}
