package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	internalEntity "github.com/tradelingo/tradelingo-be/internal/entity"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	next := g.responses[0]
	g.responses = g.responses[1:]
	return next, nil
}

type fakeUserRepo struct {
	users         map[string]*internalEntity.User
	lastTradeType string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*internalEntity.User{}}
}

func (r *fakeUserRepo) FindByUserID(db *gorm.DB, userID string) (*internalEntity.User, error) {
	if user, ok := r.users[userID]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *internalEntity.User) error {
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) UpdateTradeType(db *gorm.DB, userID, tradeType string) error {
	r.lastTradeType = tradeType
	if user, ok := r.users[userID]; ok {
		user.TradeType = tradeType
		user.HasConnectedTrades = true
	}
	return nil
}

type fakeLessonPlanRepo struct {
	plan                *internalEntity.LessonPlan
	updateModulesCalls  int
	updateProgressCalls int
}

func (r *fakeLessonPlanRepo) Create(db *gorm.DB, plan *internalEntity.LessonPlan) error {
	if plan.ID == 0 {
		plan.ID = 1
	}
	r.plan = plan
	return nil
}

func (r *fakeLessonPlanRepo) FindLatestByUserID(db *gorm.DB, userID string) (*internalEntity.LessonPlan, error) {
	if r.plan == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.plan, nil
}

func (r *fakeLessonPlanRepo) UpdateProgress(db *gorm.DB, planID uint, modules string, currentModuleIndex int) error {
	r.updateProgressCalls++
	r.plan.Modules = modules
	r.plan.CurrentModuleIndex = currentModuleIndex
	return nil
}

func (r *fakeLessonPlanRepo) UpdateModules(db *gorm.DB, planID uint, modules string) error {
	r.updateModulesCalls++
	r.plan.Modules = modules
	return nil
}

type fakeProfileRepo struct {
	row        *internalEntity.LearningProfile
	upserts    int
	increments int
}

func (r *fakeProfileRepo) FindByUserID(db *gorm.DB, userID string) (*internalEntity.LearningProfile, error) {
	if r.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.row, nil
}

func (r *fakeProfileRepo) Upsert(db *gorm.DB, profile *internalEntity.LearningProfile) error {
	r.upserts++
	count := 0
	if r.row != nil {
		count = r.row.ReflectionCount
	}
	profile.ReflectionCount = count
	r.row = profile
	return nil
}

func (r *fakeProfileRepo) IncrementReflectionCount(db *gorm.DB, userID string) error {
	r.increments++
	if r.row != nil {
		r.row.ReflectionCount++
	}
	return nil
}

type fakeMessageRepo struct {
	messages []internalEntity.ChatMessage
}

func (r *fakeMessageRepo) Create(db *gorm.DB, message *internalEntity.ChatMessage) error {
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindRecentByUserID(db *gorm.DB, userID string, limit int) ([]internalEntity.ChatMessage, error) {
	// Newest first, mirroring the real repository's ordering.
	recent := make([]internalEntity.ChatMessage, 0, len(r.messages))
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].UserID != userID {
			continue
		}
		recent = append(recent, r.messages[i])
		if limit > 0 && len(recent) == limit {
			break
		}
	}
	return recent, nil
}

type fakeQuizRepo struct {
	records []internalEntity.QuizRecord
}

func (r *fakeQuizRepo) Create(db *gorm.DB, record *internalEntity.QuizRecord) error {
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeQuizRepo) FindRecentByUserID(db *gorm.DB, userID string, limit int) ([]internalEntity.QuizRecord, error) {
	recent := make([]internalEntity.QuizRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID != userID {
			continue
		}
		recent = append(recent, r.records[i])
		if limit > 0 && len(recent) == limit {
			break
		}
	}
	return recent, nil
}

type fakeTradeRepo struct {
	trades []internalEntity.Trade
}

func (r *fakeTradeRepo) Create(db *gorm.DB, trade *internalEntity.Trade) error {
	trade.ID = uint(len(r.trades) + 1)
	r.trades = append(r.trades, *trade)
	return nil
}

func (r *fakeTradeRepo) FindByUserID(db *gorm.DB, userID string) ([]internalEntity.Trade, error) {
	found := make([]internalEntity.Trade, 0, len(r.trades))
	for _, t := range r.trades {
		if t.UserID == userID {
			found = append(found, t)
		}
	}
	return found, nil
}

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type tutorFixture struct {
	gen      *fakeGenerator
	users    *fakeUserRepo
	plans    *fakeLessonPlanRepo
	profiles *fakeProfileRepo
	messages *fakeMessageRepo
	quizzes  *fakeQuizRepo
	trades   *fakeTradeRepo
	tutor    *tutorUsecase
}

func newTutorFixture(responses ...string) *tutorFixture {
	f := &tutorFixture{
		gen:      &fakeGenerator{responses: responses},
		users:    newFakeUserRepo(),
		plans:    &fakeLessonPlanRepo{},
		profiles: &fakeProfileRepo{},
		messages: &fakeMessageRepo{},
		quizzes:  &fakeQuizRepo{},
		trades:   &fakeTradeRepo{},
	}
	f.tutor = &tutorUsecase{cfg: TutorConfig{
		Generator:      f.gen,
		Log:            silentLogger(),
		UserRepo:       f.users,
		LessonPlanRepo: f.plans,
		ProfileRepo:    f.profiles,
		MessageRepo:    f.messages,
		QuizRecordRepo: f.quizzes,
		TradeRepo:      f.trades,
	}}
	return f
}
