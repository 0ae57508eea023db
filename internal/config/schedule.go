package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScheduleConfig sobrescreve a grade de horários padrão (9h-17h, 30 min).
type ScheduleConfig struct {
	StartHour         int `yaml:"start_hour"`
	EndHour           int `yaml:"end_hour"`
	SlotMinutes       int `yaml:"slot_minutes"`
	BookingWindowDays int `yaml:"booking_window_days"`
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		StartHour:         9,
		EndHour:           17,
		SlotMinutes:       30,
		BookingWindowDays: 14,
	}
}

// LoadSchedule lê o YAML, expandindo ${VARS}. Campos ausentes mantêm o padrão.
func LoadSchedule(path string) (ScheduleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScheduleConfig{}, fmt.Errorf("read schedule file: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	sc := DefaultScheduleConfig()
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return ScheduleConfig{}, fmt.Errorf("parse schedule file: %w", err)
	}

	if err := sc.Validate(); err != nil {
		return ScheduleConfig{}, err
	}
	return sc, nil
}

func (s ScheduleConfig) Validate() error {
	switch {
	case s.StartHour < 0 || s.StartHour > 23:
		return fmt.Errorf("schedule: start_hour out of range: %d", s.StartHour)
	case s.EndHour <= s.StartHour || s.EndHour > 24:
		return fmt.Errorf("schedule: end_hour must be after start_hour: %d", s.EndHour)
	case s.SlotMinutes <= 0 || s.SlotMinutes > 60 || 60%s.SlotMinutes != 0:
		return fmt.Errorf("schedule: slot_minutes must divide an hour: %d", s.SlotMinutes)
	case s.BookingWindowDays <= 0:
		return fmt.Errorf("schedule: booking_window_days must be positive: %d", s.BookingWindowDays)
	}
	return nil
}
