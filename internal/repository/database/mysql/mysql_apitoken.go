package mysql

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/database"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

const queryTimeout = time.Second * 20

func (m *mysqlConnector) ListApiTokens(ctx context.Context) ([]entities.ApiToken, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tokens := make([]entities.ApiToken, 0)
	res := m.db.WithContext(tCtx).Order("facade").Find(&tokens)
	if res.Error != nil {
		return nil, res.Error
	}

	return tokens, nil
}

func (m *mysqlConnector) SaveApiToken(ctx context.Context, tok entities.ApiToken) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return m.db.WithContext(tCtx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "facade"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "comment", "updated_at"}),
		}).
		Create(&tok).Error
}

func (m *mysqlConnector) DeleteApiToken(ctx context.Context, facade string) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res := m.db.WithContext(tCtx).
		Unscoped().
		Where(&entities.ApiToken{Facade: facade}).
		Delete(&entities.ApiToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return database.ErrApiTokenNotFound
	}

	return nil
}
