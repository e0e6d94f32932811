package repositories

import (
	"context"
	"os"
	"testing"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

func newEmailTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SentEmail{}))
	return db
}

// Alıcı araması büyük/küçük harften bağımsız çalışmalıdır; arama terimi de
// sütun gibi küçültülür.
func TestSentEmailRecipientSearchCaseInsensitive(t *testing.T) {
	db := newEmailTestDB(t)
	repo := NewSentEmailRepositoryWithDB(db)

	for _, recipient := range []string{"veli@ornek.com", "ayse@ornek.com"} {
		require.NoError(t, repo.Create(context.Background(), &models.SentEmail{
			Recipient: recipient,
			Subject:   "Başvurunuz onaylandı",
			Status:    models.EmailStatusSent,
		}))
	}

	params := queryparams.DefaultListParams("created_at")
	params.Name = "VELİ"

	emails, total, err := repo.FindAllPaginated(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, emails, 1)
	assert.Equal(t, "veli@ornek.com", emails[0].Recipient)
}
