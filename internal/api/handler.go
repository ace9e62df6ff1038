package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/cyclecal/internal/db"
	"github.com/terraincognita07/cyclecal/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	authService     *services.AuthService
	cycleService    *services.CycleService
	annotations     *services.AnnotationStore
	calendarService *services.CalendarService
	exportService   *services.ExportService
	classifier      services.DayClassifier
	horizonCycles   int
	secretKey       []byte
	cookieSecure    bool
	location        *time.Location
	logger          *zap.Logger
	loginLimiter    *attemptLimiter
	now             func() time.Time
}

type HandlerConfig struct {
	SecretKey       []byte
	CookieSecure    bool
	Location        *time.Location
	WeekStart       time.Weekday
	ClassifierScope services.ClassifierScope
	HorizonCycles   int
	Logger          *zap.Logger
	Now             func() time.Time
}

func NewHandler(repositories *db.Repositories, config HandlerConfig) (*Handler, error) {
	if repositories == nil {
		return nil, errors.New("repositories are required")
	}
	if len(config.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.HorizonCycles <= 0 {
		config.HorizonCycles = services.DefaultHorizonCycles
	}
	if config.ClassifierScope == "" {
		config.ClassifierScope = services.ScopeMonth
	}

	classifier := services.DayClassifier{Scope: config.ClassifierScope}
	cycleService := services.NewCycleService(repositories.Cycles)
	annotations := services.NewAnnotationStore(repositories.Annotations)

	return &Handler{
		authService:  services.NewAuthService(repositories.Users),
		cycleService: cycleService,
		annotations:  annotations,
		calendarService: services.NewCalendarService(cycleService, annotations, services.CalendarOptions{
			WeekStart:     config.WeekStart,
			HorizonCycles: config.HorizonCycles,
			Classifier:    classifier,
			Location:      config.Location,
			Now:           config.Now,
		}),
		exportService: services.NewExportService(cycleService, annotations, classifier, config.HorizonCycles),
		classifier:    classifier,
		horizonCycles: config.HorizonCycles,
		secretKey:     config.SecretKey,
		cookieSecure:  config.CookieSecure,
		location:      config.Location,
		logger:        config.Logger,
		loginLimiter:  newAttemptLimiter(),
		now:           config.Now,
	}, nil
}
