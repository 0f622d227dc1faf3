package model

// ImageModel pairs a display name with the Together.ai model identifier.
type ImageModel struct {
	Name string
	ID   string
}

// Models is the selectable catalogue, in menu order. The index into this
// slice is what gets persisted in settings.
var Models = []ImageModel{
	{"FLUX.2 Pro", "black-forest-labs/FLUX.2-pro"},
	{"FLUX.2 Dev", "black-forest-labs/FLUX.2-dev"},
	{"FLUX.1 Pro", "black-forest-labs/FLUX.1-pro"},
	{"FLUX.1 Schnell", "black-forest-labs/FLUX.1-schnell"},
	{"FLUX.1 Krea Dev", "black-forest-labs/FLUX.1-krea-dev"},
	{"FLUX.1.1 Pro", "black-forest-labs/FLUX.1.1-pro"},
	{"FLUX.1 Dev", "black-forest-labs/FLUX.1-dev"},
	{"FLUX.1 Schnell (Free)", "black-forest-labs/FLUX.1-schnell-Free"},
	{"FLUX.1 Canny (edge based conditioning)", "black-forest-labs/FLUX.1-canny"},
	{"FLUX.1 Depth (depth based conditioning)", "black-forest-labs/FLUX.1-depth"},
	{"FLUX.1 Redux (image variation, restyling)", "black-forest-labs/FLUX.1-redux"},
	{"FLUX.1 Dev (LoRA support)", "black-forest-labs/FLUX.1-dev-lora"},
	{"FLUX.1 Kontext Dev (text and image input)", "black-forest-labs/FLUX.1-kontext-dev"},
	{"FLUX.1 Kontext Pro (text and image input)", "black-forest-labs/FLUX.1-kontext-pro"},
	{"FLUX.1 Kontext Max (text and image input)", "black-forest-labs/FLUX.1-kontext-max"},
}

// ModelByIndex returns the catalogue entry for idx, falling back to the
// first model when the persisted index is out of range.
func ModelByIndex(idx int) ImageModel {
	if idx < 0 || idx >= len(Models) {
		return Models[0]
	}
	return Models[idx]
}

// ModelNames returns the display names for selection widgets.
func ModelNames() []string {
	names := make([]string, len(Models))
	for i, m := range Models {
		names[i] = m.Name
	}
	return names
}
