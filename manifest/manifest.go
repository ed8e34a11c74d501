// Package manifest loads the table-formatted Features manifest described
// in spec.md §6.2: a TOML document naming which generator/vendor features
// are enabled, parsed with spf13/viper so the manifest format stays
// consistent with the rest of the pack's configuration-loading idiom.
package manifest

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// VendorFeatures is one vendor's (OEM's) named feature toggles.
type VendorFeatures struct {
	Vendor   string
	Features map[string]bool
}

// Manifest is the parsed Features manifest: the baseline feature set plus
// any number of vendor-specific overlays.
type Manifest struct {
	Features    map[string]bool
	OemFeatures []VendorFeatures
}

// Load reads a TOML manifest from path. Viper folds keys to lower case,
// so feature and vendor names are stored in lower case.
func Load(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Manifest, error) {
	m := &Manifest{Features: map[string]bool{}}
	for k, val := range v.GetStringMap("features") {
		b, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("manifest: features.%s is not a boolean", k)
		}
		m.Features[k] = b
	}
	oemSection, ok := v.Get("oem").(map[string]any)
	if !ok {
		return m, nil
	}
	for vendor, raw := range oemSection {
		vf := VendorFeatures{Vendor: vendor, Features: map[string]bool{}}
		if table, ok := raw.(map[string]any); ok {
			for k, val := range table {
				if b, ok := val.(bool); ok {
					vf.Features[k] = b
				}
			}
		}
		m.OemFeatures = append(m.OemFeatures, vf)
	}
	return m, nil
}

// AllFeatures returns every baseline feature name that is enabled.
func (m *Manifest) AllFeatures() []string {
	var out []string
	for name, on := range m.Features {
		if on {
			out = append(out, name)
		}
	}
	return out
}

// AllVendors returns every vendor with an OEM overlay, lower-cased as Load
// stores them.
func (m *Manifest) AllVendors() []string {
	out := make([]string, 0, len(m.OemFeatures))
	for _, vf := range m.OemFeatures {
		out = append(out, vf.Vendor)
	}
	return out
}

// CollectVendorFeatures returns the effective feature set for a vendor:
// the baseline manifest overlaid with that vendor's own toggles. The
// vendor name is matched case-insensitively.
func (m *Manifest) CollectVendorFeatures(vendor string) map[string]bool {
	out := make(map[string]bool, len(m.Features))
	for k, v := range m.Features {
		out[k] = v
	}
	for _, vf := range m.OemFeatures {
		if !strings.EqualFold(vf.Vendor, vendor) {
			continue
		}
		for k, v := range vf.Features {
			out[k] = v
		}
	}
	return out
}

// Collect returns the effective baseline feature set (no vendor overlay).
func (m *Manifest) Collect() map[string]bool {
	out := make(map[string]bool, len(m.Features))
	for k, v := range m.Features {
		out[k] = v
	}
	return out
}
