package wizard

import (
	"strings"

	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// frequencyLexicon maps user-typed frequency terms to the enum. Matching
// is exact after trimming and lowercasing; terms cover both supported
// languages.
var frequencyLexicon = map[string]entity.Frequency{
	"daily":          entity.FrequencyDaily,
	"каждый день":    entity.FrequencyDaily,
	"ежедневно":      entity.FrequencyDaily,
	"weekly":         entity.FrequencyWeekly,
	"еженедельно":    entity.FrequencyWeekly,
	"раз в неделю":   entity.FrequencyWeekly,
	"3 times a week": entity.FrequencyThreeTimesWeek,
	"3 раза в неделю": entity.FrequencyThreeTimesWeek,
}

// ParseFrequency resolves free-form text to a frequency value.
func ParseFrequency(text string) (entity.Frequency, bool) {
	freq, ok := frequencyLexicon[strings.ToLower(strings.TrimSpace(text))]
	return freq, ok
}
