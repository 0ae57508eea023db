package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Schedule descreve a grade de horários oferecida em um dia.
// O intervalo é [StartHour, EndHour) em passos de StepMinutes.
type Schedule struct {
	StartHour   int
	EndHour     int
	StepMinutes int
}

func DefaultSchedule() Schedule {
	return Schedule{
		StartHour:   9,
		EndHour:     17,
		StepMinutes: 30,
	}
}

func (s Schedule) normalized() Schedule {
	d := DefaultSchedule()
	if s.StepMinutes <= 0 {
		s.StepMinutes = d.StepMinutes
	}
	if s.StartHour < 0 || s.StartHour > 23 {
		s.StartHour = d.StartHour
	}
	if s.EndHour <= s.StartHour || s.EndHour > 24 {
		s.EndHour = d.EndHour
	}
	return s
}

// Grid returns every slot label of the day in order, unfiltered.
func (s Schedule) Grid() []string {
	s = s.normalized()

	var out []string
	for m := s.StartHour * 60; m < s.EndHour*60; m += s.StepMinutes {
		out = append(out, SlotLabel(m/60, m%60))
	}
	return out
}

// OnGrid reports whether label is one of the grid slots.
func (s Schedule) OnGrid(label string) bool {
	for _, l := range s.Grid() {
		if l == label {
			return true
		}
	}
	return false
}

// ===============================
// Slot labels
// ===============================

func SlotLabel(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// ParseSlot aceita "9:00" ou "09:00" e devolve hora e minuto.
func ParseSlot(label string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(label), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid slot %q", label)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid slot hour %q", label)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid slot minute %q", label)
	}

	return hour, minute, nil
}

// NormalizeSlot rewrites a label to the canonical H:MM form.
func NormalizeSlot(label string) (string, error) {
	h, m, err := ParseSlot(label)
	if err != nil {
		return "", err
	}
	return SlotLabel(h, m), nil
}

// ===============================
// Availability
// ===============================

// AvailableSlots filtra a grade do dia. Se date for o mesmo dia de now,
// só ficam os horários estritamente depois de now. Outras datas não são
// filtradas por horário. Labels presentes em taken são removidos.
func AvailableSlots(
	date time.Time,
	now time.Time,
	schedule Schedule,
	taken map[string]bool,
) []string {

	loc := now.Location()
	day := date.In(loc)
	today := SameDay(day, now)

	out := make([]string, 0, len(schedule.Grid()))
	for _, label := range schedule.Grid() {
		if taken[label] {
			continue
		}

		if today {
			h, m, _ := ParseSlot(label)
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc)
			if !slotStart.After(now) {
				continue
			}
		}

		out = append(out, label)
	}

	return out
}

func SameDay(a, b time.Time) bool {
	return a.Format(DateLayout) == b.Format(DateLayout)
}

// DateOptions returns the selectable dates: tomorrow plus the following
// days, days entries in total.
func DateOptions(now time.Time, days int) []time.Time {
	if days <= 0 {
		days = DefaultBookingWindowDays
	}

	start := StartOfDay(now)
	out := make([]time.Time, 0, days)
	for i := 1; i <= days; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
