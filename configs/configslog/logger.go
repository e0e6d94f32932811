package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış logger, SLog sugared logger.
// InitLogger çağrılmadan kullanılmamalıdır.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger uygulama loggerlarını hazırlar.
// APP_ENV=production ise JSON, aksi halde konsol formatı kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama çalışamaz.
		panic("logger oluşturulamadı: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tamponlanmış log kayıtlarını diske yazar (defer ile çağrılır).
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
