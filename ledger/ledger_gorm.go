package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// guildCounter holds the high-water case number per guild. Allocation
// happens inside a transaction with the counter row locked, so concurrent
// enforcement across processes still yields unique, increasing numbers.
type guildCounter struct {
	GuildID  string `gorm:"primaryKey"`
	LastCase int64
}

type caseRow struct {
	ID          uint   `gorm:"primaryKey"`
	GuildID     string `gorm:"index:idx_cases_guild_num,unique"`
	CaseNumber  int64  `gorm:"index:idx_cases_guild_num,unique"`
	Action      string
	ModeratorID string
	TargetID    string
	Reason      string
	CreatedAt   int64 `gorm:"autoCreateTime"`
}

type GormCaseLedger struct {
	db *gorm.DB
}

func NewGormCaseLedger(db *gorm.DB) (*GormCaseLedger, error) {
	if err := db.AutoMigrate(&guildCounter{}, &caseRow{}); err != nil {
		return nil, fmt.Errorf("migrating ledger schema: %w", err)
	}
	return &GormCaseLedger{db: db}, nil
}

func (l *GormCaseLedger) NextCaseNumber(ctx context.Context, guildID string) (int64, error) {
	var next int64
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ctr guildCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("guild_id = ?", guildID).
			First(&ctr).Error
		if err == gorm.ErrRecordNotFound {
			ctr = guildCounter{GuildID: guildID}
			if err := tx.Create(&ctr).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		ctr.LastCase++
		next = ctr.LastCase
		return tx.Model(&guildCounter{}).
			Where("guild_id = ?", guildID).
			Update("last_case", ctr.LastCase).Error
	})
	if err != nil {
		return 0, fmt.Errorf("allocating case number: %w", err)
	}
	return next, nil
}

func (l *GormCaseLedger) RecordCase(ctx context.Context, c *Case) error {
	row := caseRow{
		GuildID:     c.GuildID,
		CaseNumber:  c.CaseNumber,
		Action:      c.Action,
		ModeratorID: c.ModeratorID,
		TargetID:    c.TargetID,
		Reason:      c.Reason,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("recording case: %w", err)
	}
	return nil
}
