package services

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/quiz"
	"github.com/vytor/artikelfinder/internal/repository"
)

// Guidance shown when a quiz cannot start because its source is empty.
const (
	guidanceNoFavorites = "Your favorites list is empty. Add some words to your favorites first."
	guidanceNoCurated   = "None of the selected words are in the word list."
	guidanceNoWords     = "The word list is empty."
)

// QuizView is a session together with the question currently on screen.
type QuizView struct {
	Session  quiz.Snapshot `json:"session"`
	Question quiz.Question `json:"question"`
}

// AnswerView is the feedback for one answer.
type AnswerView struct {
	quiz.AnswerResult
	Session quiz.Snapshot `json:"session"`
	// Warnings lists persistence problems that did not void the answer.
	Warnings []string `json:"warnings,omitempty"`
}

// QuizService runs article quiz sessions. Only one session is active at a
// time; starting a new one discards the previous.
type QuizService interface {
	StartSession(ctx context.Context, source models.QuizSource) (*QuizView, error)
	GetSession(ctx context.Context, id string) (*QuizView, error)
	NextQuestion(ctx context.Context, id string) (*QuizView, error)
	Answer(ctx context.Context, id string, article string) (*AnswerView, error)
}

type quizService struct {
	catalog      *catalog.Catalog
	engine       *quiz.Engine
	favoriteRepo repository.FavoriteRepository
	settingsRepo repository.SettingsRepository

	mu       sync.Mutex
	active   *quiz.Session
	question quiz.Question
}

// NewQuizService creates a new QuizService
func NewQuizService(
	cat *catalog.Catalog,
	engine *quiz.Engine,
	favoriteRepo repository.FavoriteRepository,
	settingsRepo repository.SettingsRepository,
) QuizService {
	return &quizService{
		catalog:      cat,
		engine:       engine,
		favoriteRepo: favoriteRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *quizService) StartSession(ctx context.Context, source models.QuizSource) (*QuizView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting quiz: source=%s, curated=%d", source.Kind, len(source.Words))

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Error("failed to load settings: %v", err)
		return nil, errors.NewInternalError(err)
	}

	in := quiz.StartInput{
		Source:        source,
		Words:         s.catalog.All(),
		DeckLengthCap: settings.DeckLengthCap,
	}
	if source.Kind == models.SourceFavoritesOnly {
		in.Favorites, err = s.favoriteRepo.Set(ctx)
		if err != nil {
			log.Error("failed to load favorites: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	sess, q, err := s.engine.Start(ctx, in)
	if err != nil {
		switch {
		case stderrors.Is(err, quiz.ErrEmptySource):
			return nil, errors.NewEmptySourceError(emptySourceGuidance(source.Kind), err)
		case stderrors.Is(err, quiz.ErrUnknownSource):
			return nil, errors.NewValidationError("source", "must be one of all, favorites, curated")
		default:
			log.Error("failed to start quiz: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	s.mu.Lock()
	if s.active != nil {
		log.Debug("discarding previous session: id=%s", s.active.ID)
	}
	s.active, s.question = sess, q
	s.mu.Unlock()

	return &QuizView{Session: sess.Snapshot(), Question: q}, nil
}

func emptySourceGuidance(kind models.QuizSourceKind) string {
	switch kind {
	case models.SourceFavoritesOnly:
		return guidanceNoFavorites
	case models.SourceCuratedList:
		return guidanceNoCurated
	default:
		return guidanceNoWords
	}
}

func (s *quizService) GetSession(ctx context.Context, id string) (*QuizView, error) {
	logger.FromContext(ctx).Debug("getting quiz session: id=%s", id)

	sess, q, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return &QuizView{Session: sess.Snapshot(), Question: q}, nil
}

func (s *quizService) NextQuestion(ctx context.Context, id string) (*QuizView, error) {
	logger.FromContext(ctx).Debug("next question: id=%s", id)

	sess, _, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	q := s.engine.Next(ctx, sess)

	s.mu.Lock()
	if s.active == sess {
		s.question = q
	}
	s.mu.Unlock()

	return &QuizView{Session: sess.Snapshot(), Question: q}, nil
}

func (s *quizService) Answer(ctx context.Context, id string, article string) (*AnswerView, error) {
	log := logger.FromContext(ctx)
	log.Debug("answering: id=%s, article=%s", id, article)

	sess, _, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Error("failed to load settings: %v", err)
		return nil, errors.NewInternalError(err)
	}

	res, err := s.engine.Answer(ctx, sess, article, settings.DailyGoal)
	view := &AnswerView{AnswerResult: res}
	switch {
	case err == nil:
	case stderrors.Is(err, quiz.ErrGoalNotCredited):
		view.Warnings = append(view.Warnings, "daily goal reached but the streak could not be saved")
	case stderrors.Is(err, quiz.ErrNoActiveQuestion):
		return nil, errors.NewInvalidStateError("no question is awaiting an answer", err)
	default:
		log.Error("failed to record answer: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	if s.active == sess {
		s.question.Word = nil
	}
	s.mu.Unlock()

	view.Session = sess.Snapshot()
	return view, nil
}

func (s *quizService) lookup(id string) (*quiz.Session, quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != id {
		return nil, quiz.Question{}, errors.NewNotFoundError("quiz session", id)
	}
	return s.active, s.question, nil
}
