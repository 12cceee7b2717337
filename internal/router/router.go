package router

import (
	"net/http"

	"github.com/c5551051011/insidelab-frontend/internal/auth"
	"github.com/c5551051011/insidelab-frontend/internal/handlers/web"
	"github.com/c5551051011/insidelab-frontend/internal/middleware"
	"go.uber.org/zap"
)

// New configures all HTTP routes and returns the root handler wrapped
// in the middleware chain.
func New(h *web.Handler, authCtx *auth.Context, staticDir string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static assets
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// Pages
	mux.HandleFunc("GET /", h.HomePage)
	mux.HandleFunc("GET /sign-in", h.SignInPage)
	mux.HandleFunc("GET /sign-up", h.SignUpPage)
	mux.HandleFunc("GET /search", h.SearchPage)
	mux.Handle("GET /write-review", middleware.RequireAuth(authCtx)(http.HandlerFunc(h.WriteReviewPage)))

	// Auth
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/register", h.Register)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("POST /api/resend-verification", h.ResendVerification)
	mux.HandleFunc("GET /auth/google/login", h.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", h.GoogleCallback)

	// Search
	mux.HandleFunc("GET /api/suggestions", h.Suggestions)
	mux.HandleFunc("GET /api/search", h.SearchLabs)
	mux.HandleFunc("GET /api/labs/{id}", h.LabDetail)
	mux.HandleFunc("GET /api/labs/{id}/reviews", h.LabReviews)

	// Review form cascade
	mux.HandleFunc("GET /api/universities", h.Universities)
	mux.HandleFunc("GET /api/universities/{id}/departments", h.Departments)
	mux.HandleFunc("GET /api/departments/{id}/research-groups", h.ResearchGroups)
	mux.HandleFunc("GET /api/review-labs", h.LabOptions)
	mux.HandleFunc("GET /api/rating-categories", h.RatingCategoryOptions)

	// Add-entity modals. Authentication is enforced by the backend;
	// a 401 surfaces as a JSON error, not a redirect.
	mux.HandleFunc("POST /api/universities", h.AddUniversity)
	mux.HandleFunc("POST /api/universities/{id}/departments", h.AddDepartment)
	mux.HandleFunc("POST /api/departments/{id}/research-groups", h.AddResearchGroup)
	mux.HandleFunc("POST /api/labs", h.AddLab)

	// Reviews
	mux.HandleFunc("POST /api/reviews", h.SubmitReview)
	mux.HandleFunc("GET /api/my-reviews", h.MyReviews)
	mux.HandleFunc("PUT /api/reviews/{id}", h.UpdateReview)
	mux.HandleFunc("DELETE /api/reviews/{id}", h.DeleteReview)
	mux.HandleFunc("POST /api/reviews/{id}/vote", h.VoteOnReview)

	logger.Info("Router setup completed")

	return middleware.Chain(mux,
		middleware.RequestID(logger),
		middleware.Logging(logger),
		middleware.RecoverPanic(logger),
		middleware.SecureHeaders,
	)
}
