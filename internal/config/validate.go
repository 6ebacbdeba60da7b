package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if c.Attachment.MaxSizeBytes <= 0 {
		return fmt.Errorf("attachment.max_size_bytes must be > 0 (got %d)", c.Attachment.MaxSizeBytes)
	}

	if c.Agenda.MaxItemDuration <= 0 {
		return fmt.Errorf("agenda.max_item_duration must be > 0 (got %d)", c.Agenda.MaxItemDuration)
	}

	return nil
}
