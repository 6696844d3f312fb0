package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	categoryhandler "github.com/ngocdai99/furniture-backend/internal/transport/http/category"
	colorhandler "github.com/ngocdai99/furniture-backend/internal/transport/http/color"
	favoritehandler "github.com/ngocdai99/furniture-backend/internal/transport/http/favorite"
	optionhandler "github.com/ngocdai99/furniture-backend/internal/transport/http/option"
	orderhandler "github.com/ngocdai99/furniture-backend/internal/transport/http/order"
	producthandler "github.com/ngocdai99/furniture-backend/internal/transport/http/product"
	sizehandler "github.com/ngocdai99/furniture-backend/internal/transport/http/size"
	uploadhandler "github.com/ngocdai99/furniture-backend/internal/transport/http/upload"
	userhandler "github.com/ngocdai99/furniture-backend/internal/transport/http/user"

	"github.com/ngocdai99/furniture-backend/internal/service/services/catalogsvc"
	"github.com/ngocdai99/furniture-backend/internal/service/services/ordersvc"
	"github.com/ngocdai99/furniture-backend/internal/service/services/usersvc"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/auth"
	"github.com/ngocdai99/furniture-backend/pkg/http/middleware/trace"
	"github.com/ngocdai99/furniture-backend/pkg/logger"
)

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   *ordersvc.OrderService
	catalogSvc *catalogsvc.CatalogService
	userSvc    *usersvc.UserService
	authSecret []byte
}

func NewHTTPTransport(
	orderSvc *ordersvc.OrderService,
	catalogSvc *catalogsvc.CatalogService,
	userSvc *usersvc.UserService,
	authSecret []byte,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		catalogSvc: catalogSvc,
		userSvc:    userSvc,
		authSecret: authSecret,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Registration,
// login, health and the swagger mount are public; every other route requires
// a bearer token.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/health", health)

	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.json"),
	))
	h.router.Get("/docs/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, viper.GetString("server.http.swagger_file"))
	})

	uploadDir := http.Dir(viper.GetString("upload.dir"))
	h.router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadDir)))

	h.router.Post("/user/register", func(w http.ResponseWriter, r *http.Request) {
		userhandler.Register(w, r, h.userSvc)
	})
	h.router.Post("/user/login", func(w http.ResponseWriter, r *http.Request) {
		userhandler.Login(w, r, h.userSvc)
	})

	h.router.Group(func(r chi.Router) {
		r.Use(auth.NewAuthMiddleware(h.authSecret))

		r.Route("/user", func(r chi.Router) {
			r.Get("/detail/{id}", func(w http.ResponseWriter, req *http.Request) {
				userhandler.Detail(w, req, h.userSvc)
			})
			r.Put("/update-profile", func(w http.ResponseWriter, req *http.Request) {
				userhandler.UpdateProfile(w, req, h.userSvc)
			})
			r.Post("/upload", uploadhandler.Single)
			r.Post("/uploads", uploadhandler.Multi)
			r.Post("/send-mail", func(w http.ResponseWriter, req *http.Request) {
				userhandler.SendMail(w, req, h.userSvc)
			})
		})

		r.Route("/category", func(r chi.Router) {
			r.Get("/list", func(w http.ResponseWriter, req *http.Request) {
				categoryhandler.List(w, req, h.catalogSvc)
			})
			r.Get("/detail", func(w http.ResponseWriter, req *http.Request) {
				categoryhandler.Detail(w, req, h.catalogSvc)
			})
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				categoryhandler.Add(w, req, h.catalogSvc)
			})
			r.Put("/update", func(w http.ResponseWriter, req *http.Request) {
				categoryhandler.Update(w, req, h.catalogSvc)
			})
			r.Delete("/delete", func(w http.ResponseWriter, req *http.Request) {
				categoryhandler.Delete(w, req, h.catalogSvc)
			})
		})

		r.Route("/product", func(r chi.Router) {
			r.Get("/list", func(w http.ResponseWriter, req *http.Request) {
				producthandler.List(w, req, h.catalogSvc)
			})
			r.Get("/detail/{id}", func(w http.ResponseWriter, req *http.Request) {
				producthandler.Detail(w, req, h.catalogSvc)
			})
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				producthandler.Add(w, req, h.catalogSvc)
			})
			r.Put("/update", func(w http.ResponseWriter, req *http.Request) {
				producthandler.Update(w, req, h.catalogSvc)
			})
		})

		r.Route("/size", func(r chi.Router) {
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				sizehandler.Add(w, req, h.catalogSvc)
			})
			r.Get("/list", func(w http.ResponseWriter, req *http.Request) {
				sizehandler.List(w, req, h.catalogSvc)
			})
			r.Put("/update", func(w http.ResponseWriter, req *http.Request) {
				sizehandler.Update(w, req, h.catalogSvc)
			})
		})

		r.Route("/color", func(r chi.Router) {
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				colorhandler.Add(w, req, h.catalogSvc)
			})
			r.Get("/list", func(w http.ResponseWriter, req *http.Request) {
				colorhandler.List(w, req, h.catalogSvc)
			})
			r.Put("/update", func(w http.ResponseWriter, req *http.Request) {
				colorhandler.Update(w, req, h.catalogSvc)
			})
		})

		r.Route("/option", func(r chi.Router) {
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				optionhandler.Add(w, req, h.catalogSvc)
			})
			r.Put("/update", func(w http.ResponseWriter, req *http.Request) {
				optionhandler.Update(w, req, h.catalogSvc)
			})
			r.Get("/list-by-productid", func(w http.ResponseWriter, req *http.Request) {
				optionhandler.ListByProduct(w, req, h.catalogSvc)
			})
		})

		r.Route("/favorite", func(r chi.Router) {
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				favoritehandler.Add(w, req, h.catalogSvc)
			})
			r.Get("/list-by-userid", func(w http.ResponseWriter, req *http.Request) {
				favoritehandler.ListByUser(w, req, h.catalogSvc)
			})
		})

		r.Route("/order", func(r chi.Router) {
			r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
				orderhandler.CreateOrder(w, req, h.orderSvc)
			})
			r.Get("/details", func(w http.ResponseWriter, req *http.Request) {
				orderhandler.OrderDetails(w, req, h.orderSvc)
			})
			r.Get("/list-orders", func(w http.ResponseWriter, req *http.Request) {
				orderhandler.ListOrders(w, req, h.orderSvc)
			})
		})
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":true}`))
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
