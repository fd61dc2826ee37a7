package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/memoraid/memoraid/pkg/utils/logging"
)

// DefaultMaxUploadSize is the largest accepted photo upload
const DefaultMaxUploadSize = 20 << 20

type AuthUseCase = usecase.AuthUseCaseInterface

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	authUC        AuthUseCase
	maxUploadSize int64
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

// WithMaxUploadSize sets the largest accepted photo upload in bytes
func WithMaxUploadSize(n int64) Options {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadSize = n
		}
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:        r,
		uc:            uc,
		maxUploadSize: DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authUC == nil && uc != nil {
		s.authUC = uc.Auth
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Submission routes accept a share token as well as a user token
		r.Group(func(r chi.Router) {
			r.Use(contributorAuthMiddleware(s.authUC))

			r.Post("/memories/contributor", s.createContributorHandler)
			r.Post("/memories/upload", s.uploadPhotoHandler)
			r.Post("/memories", s.createMemoryHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(userAuthMiddleware(s.authUC))

			r.Get("/contributors", s.listContributorsHandler)

			r.Get("/memories/user/me", s.listMyMemoriesHandler)
			r.Get("/memories/user/{userId}", s.listMemoriesHandler)
			r.Get("/memories/{memoryId}", s.getMemoryHandler)
			r.Delete("/memories/{memoryId}", s.deleteMemoryHandler)
			r.Post("/memories/{memoryId}/questions", s.regenerateQuestionsHandler)

			r.Get("/questions/memory/{memoryId}", s.listQuestionsHandler)
			r.Get("/questions/daily", s.dailyQuestionsHandler)

			r.Post("/quiz", s.saveQuizAttemptHandler)
			r.Get("/quiz/attempts", s.listQuizAttemptsHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
