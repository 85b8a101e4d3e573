// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/dalemusser/taskhub/internal/app/features/accounts"
	commentsfeature "github.com/dalemusser/taskhub/internal/app/features/comments"
	healthfeature "github.com/dalemusser/taskhub/internal/app/features/health"
	projectsfeature "github.com/dalemusser/taskhub/internal/app/features/projects"
	tasksfeature "github.com/dalemusser/taskhub/internal/app/features/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// TaskHub builds the token-based auth manager, then mounts the JSON feature
// routers: health, auth (register/login/refresh), me, projects (with nested
// tasks), tasks (with nested comments), and comments.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenIssuer, appCfg.AccessTokenTTL, appCfg.RefreshTokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// The auth manager re-fetches the user on every request, so role
	// changes and account deletions take effect immediately.
	authMgr := auth.NewManager(tokens, userstore.NewFetcher(deps.MongoDatabase), logger)

	db := deps.MongoDatabase
	strict := appCfg.StrictResourceOwnership

	accountsHandler := accountsfeature.NewHandler(db, logger, authMgr)
	projectsHandler := projectsfeature.NewHandler(db, logger)
	tasksHandler := tasksfeature.NewHandler(db, logger, strict)
	commentsHandler := commentsfeature.NewHandler(db, logger, strict)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration, login, and token refresh
	r.Mount("/auth", accountsfeature.Routes(accountsHandler))
	r.Mount("/me", accountsfeature.MeRoutes(accountsHandler, authMgr))

	// Projects own their member and task sub-resources; tasks own their
	// comment sub-resource. The nested routers are built here and handed
	// to their parents so the features stay import-free of each other.
	r.Mount("/projects", projectsfeature.Routes(projectsHandler, authMgr, tasksfeature.ProjectRoutes(tasksHandler)))
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler, authMgr, commentsfeature.TaskRoutes(commentsHandler)))
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, authMgr))

	return r, nil
}
