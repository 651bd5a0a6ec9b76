// Package httpapi exposes the contact book over HTTP/JSON. It binds the
// session for each request, gates protected handlers on an authenticated
// principal, and translates service errors into the uniform response
// envelope.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"contactbook/internal/logging"
	"contactbook/internal/server/addresses"
	"contactbook/internal/server/contacts"
	"contactbook/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

// UserService is the slice of the user service the transport needs.
type UserService interface {
	Register(ctx context.Context, username string, name string, password string) (*users.User, error)
	Login(ctx context.Context, username string, password string) (*users.User, error)
	Update(ctx context.Context, user *users.User, name *string, password *string) (*users.User, error)
	Logout(ctx context.Context, user *users.User) error
	FindByUsername(ctx context.Context, username string) (*users.User, error)
}

// ContactService covers contact CRUD and search.
type ContactService interface {
	Create(ctx context.Context, username string, contact *contacts.Contact) (*contacts.Contact, error)
	Get(ctx context.Context, username string, id int64) (*contacts.Contact, error)
	Update(ctx context.Context, username string, contact *contacts.Contact) (*contacts.Contact, error)
	Delete(ctx context.Context, username string, id int64) (*contacts.Contact, error)
	Search(ctx context.Context, username string, filter contacts.SearchFilter) ([]*contacts.Contact, *contacts.Paging, error)
}

// AddressService covers the contact-scoped address operations.
type AddressService interface {
	Create(ctx context.Context, username string, address *addresses.Address) (*addresses.Address, error)
	Get(ctx context.Context, username string, contactID int64, addressID int64) (*addresses.Address, error)
	Update(ctx context.Context, username string, address *addresses.Address) (*addresses.Address, error)
	Delete(ctx context.Context, username string, contactID int64, addressID int64) (*addresses.Address, error)
	List(ctx context.Context, username string, contactID int64) ([]*addresses.Address, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	contacts  ContactService
	addresses AddressService
	jwtSecret []byte
	validate  *validator.Validate
}

func NewServer(a string, l logging.Logger, us UserService, cs ContactService, as AddressService, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		contacts:  cs,
		addresses: as,
		jwtSecret: []byte(secretKey),
		validate:  validator.New(),
	}, nil
}

// Router assembles the chi mux with the middleware chain and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.sessionBinder)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleRegister)
		r.Post("/users/login", s.handleLogin)
		r.Get("/users/current", s.handleCurrentUser)
		r.Patch("/users/current", s.handleUpdateUser)
		r.Delete("/users/current", s.handleLogout)

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", s.handleCreateContact)
			r.Get("/", s.handleSearchContacts)

			r.Route("/{contactId}", func(r chi.Router) {
				r.Get("/", s.handleGetContact)
				r.Put("/", s.handleUpdateContact)
				r.Delete("/", s.handleDeleteContact)

				r.Route("/addresses", func(r chi.Router) {
					r.Post("/", s.handleCreateAddress)
					r.Get("/", s.handleListAddresses)
					r.Get("/{addressId}", s.handleGetAddress)
					r.Put("/{addressId}", s.handleUpdateAddress)
					r.Delete("/{addressId}", s.handleDeleteAddress)
				})
			})
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
