package render

import "fmt"

// Config holds report layout parameters.
type Config struct {
	Paper       string `toml:"paper"`
	RowsPerPage int    `toml:"rows_per_page"`
	FontName    string `toml:"font_name"`
	FontSize    int    `toml:"font_size"`
}

// Finalize applies defaults and validation.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Paper != "" {
		c.Paper = overlay.Paper
	}
	if overlay.RowsPerPage != 0 {
		c.RowsPerPage = overlay.RowsPerPage
	}
	if overlay.FontName != "" {
		c.FontName = overlay.FontName
	}
	if overlay.FontSize != 0 {
		c.FontSize = overlay.FontSize
	}
}

func (c *Config) loadDefaults() {
	if c.Paper == "" {
		c.Paper = "A4"
	}
	if c.RowsPerPage == 0 {
		c.RowsPerPage = 40
	}
	if c.FontName == "" {
		c.FontName = "Courier"
	}
	if c.FontSize == 0 {
		c.FontSize = 9
	}
}

func (c *Config) validate() error {
	if c.RowsPerPage < 5 {
		return fmt.Errorf("rows_per_page %d too small", c.RowsPerPage)
	}
	if c.FontSize < 6 || c.FontSize > 14 {
		return fmt.Errorf("font_size %d outside [6,14]", c.FontSize)
	}
	return nil
}
