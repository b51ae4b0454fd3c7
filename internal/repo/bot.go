package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	botSettingsTable = "bot_settings"
	botMessagesTable = "bot_messages"
)

func (r *GormRepo) ListBotSettings(ctx context.Context) ([]models.BotSetting, error) {
	rows := []models.BotSetting{}
	err := r.from(ctx, botSettingsTable).Order("setting_key").Find(&rows).Error
	return rows, err
}

func (r *GormRepo) ListBotMessages(ctx context.Context) ([]models.BotMessage, error) {
	rows := []models.BotMessage{}
	err := r.from(ctx, botMessagesTable).Order("message_key").Find(&rows).Error
	return rows, err
}

func (r *GormRepo) BotSettingsMap(ctx context.Context) (map[string]string, error) {
	rows, err := r.ListBotSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.SettingKey] = s.SettingValue
	}
	return out, nil
}

func (r *GormRepo) BotMessagesMap(ctx context.Context) (map[string]string, error) {
	rows, err := r.ListBotMessages(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, m := range rows {
		out[m.MessageKey] = m.MessageText
	}
	return out, nil
}

func (r *GormRepo) UpdateBotSettings(ctx context.Context, values map[string]string) (int64, error) {
	return r.updateByKey(ctx, botSettingsTable, "setting_key", "setting_value", values)
}

func (r *GormRepo) UpdateBotMessages(ctx context.Context, values map[string]string) (int64, error) {
	return r.updateByKey(ctx, botMessagesTable, "message_key", "message_text", values)
}
