package feature

import (
	"sort"

	"tarot_slots/internal/model"
)

// minTriggerColumns колонок одного типа для запуска бонуса
const minTriggerColumns = 2

// DetectTrigger бонус по таро-колонкам спина. При нескольких подходящих типах
// выбирается по FeaturePriority, а не по количеству колонок.
func DetectTrigger(tarots []model.TarotColumn) *model.FeatureTrigger {
	byType := make(map[model.FeatureType][]int)
	for _, t := range tarots {
		if t.Type == model.FeatureNone {
			continue
		}
		byType[t.Type] = append(byType[t.Type], t.Column)
	}

	for _, ft := range model.FeaturePriority {
		columns := byType[ft]
		if len(columns) < minTriggerColumns {
			continue
		}
		sort.Ints(columns)
		return &model.FeatureTrigger{
			Type:    ft,
			Count:   len(columns),
			Columns: columns,
		}
	}
	return nil
}
