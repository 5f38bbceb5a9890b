package configloader

import "github.com/yaklabco/gomdblocks/pkg/config"

// merge combines two configurations, with override taking precedence.
//   - Strings and ints: override wins when non-zero.
//   - Booleans: only true overrides, so a file cannot unset a flag.
//   - Slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	setString(&result.Blocks.BlockType, override.Blocks.BlockType)
	setString(&result.Blocks.SpanType, override.Blocks.SpanType)
	setString(&result.Blocks.LinkType, override.Blocks.LinkType)

	setString(&result.Document.ID, override.Document.ID)
	setString(&result.Document.Type, override.Document.Type)
	setString(&result.Document.TitleField, override.Document.TitleField)
	setString(&result.Document.SummaryField, override.Document.SummaryField)
	setString(&result.Document.ContentField, override.Document.ContentField)
	if override.Document.BorrowFields != nil {
		result.Document.BorrowFields = append([]string(nil), override.Document.BorrowFields...)
	}

	setString(&result.FrontMatter.Mode, override.FrontMatter.Mode)
	setString(&result.FrontMatter.Marker, override.FrontMatter.Marker)

	setString(&result.Preview.Flavor, override.Preview.Flavor)

	if override.Output.Pretty {
		result.Output.Pretty = true
	}
	setString(&result.Output.Extension, override.Output.Extension)

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	setString(&result.OutputDir, override.OutputDir)

	return result
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// MergeAll merges configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
