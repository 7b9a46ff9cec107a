package capture

import (
	"fmt"
	"log"

	"roadwatch/internal/model"
	pg "roadwatch/internal/postgres"

	"gorm.io/gorm"
)

const enrichmentBatchSize = 200

// SaveCycleData persists a cycle's routes, summary, and enrichment rows to
// PostgreSQL. Captures follow the normal dirty-flush path instead.
func (s *CaptureService) SaveCycleData(data *model.CycleData) error {
	db := pg.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, route := range data.Routes {
			if result := tx.Save(route); result.Error != nil {
				return fmt.Errorf("failed to save route %s: %w", route.RouteID, result.Error)
			}
		}

		if result := tx.Save(&data.Cycle); result.Error != nil {
			return fmt.Errorf("failed to save cycle summary: %w", result.Error)
		}

		if len(data.Conditions) > 0 {
			if result := tx.CreateInBatches(data.Conditions, enrichmentBatchSize); result.Error != nil {
				return fmt.Errorf("failed to save road conditions: %w", result.Error)
			}
		}
		if len(data.Events) > 0 {
			if result := tx.CreateInBatches(data.Events, enrichmentBatchSize); result.Error != nil {
				return fmt.Errorf("failed to save events: %w", result.Error)
			}
		}
		if len(data.Weather) > 0 {
			if result := tx.CreateInBatches(data.Weather, enrichmentBatchSize); result.Error != nil {
				return fmt.Errorf("failed to save weather stations: %w", result.Error)
			}
		}
		if len(data.Passes) > 0 {
			if result := tx.CreateInBatches(data.Passes, enrichmentBatchSize); result.Error != nil {
				return fmt.Errorf("failed to save mountain passes: %w", result.Error)
			}
		}
		if len(data.Plows) > 0 {
			if result := tx.CreateInBatches(data.Plows, enrichmentBatchSize); result.Error != nil {
				return fmt.Errorf("failed to save snow plows: %w", result.Error)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Saved cycle %s to PostgreSQL", data.Cycle.CycleID)
	return nil
}

// LoadCycles returns cycle summaries, newest first.
func LoadCycles(limit int) ([]model.CycleSummary, error) {
	db := pg.GetDB()
	var cycles []model.CycleSummary

	result := db.Order("started_at DESC").Limit(limit).Find(&cycles)
	if result.Error != nil {
		return nil, result.Error
	}
	return cycles, nil
}

// LoadCycleData reassembles the full payload of a past cycle from PostgreSQL.
func LoadCycleData(cycleID string) (*model.CycleData, error) {
	db := pg.GetDB()
	data := &model.CycleData{}

	if result := db.First(&data.Cycle, "cycle_id = ?", cycleID); result.Error != nil {
		return nil, fmt.Errorf("cycle %s not found: %w", cycleID, result.Error)
	}
	if result := db.Find(&data.Routes); result.Error != nil {
		return nil, result.Error
	}
	if result := db.Where("cycle_id = ?", cycleID).Find(&data.Captures); result.Error != nil {
		return nil, result.Error
	}
	if result := db.Where("cycle_id = ?", cycleID).Find(&data.Conditions); result.Error != nil {
		return nil, result.Error
	}
	if result := db.Where("cycle_id = ?", cycleID).Find(&data.Events); result.Error != nil {
		return nil, result.Error
	}
	if result := db.Where("cycle_id = ?", cycleID).Find(&data.Weather); result.Error != nil {
		return nil, result.Error
	}
	if result := db.Where("cycle_id = ?", cycleID).Find(&data.Passes); result.Error != nil {
		return nil, result.Error
	}
	if result := db.Where("cycle_id = ?", cycleID).Find(&data.Plows); result.Error != nil {
		return nil, result.Error
	}
	return data, nil
}
