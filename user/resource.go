package user

import (
	"errors"
	"net/http"

	"atlas-rooms/item"
	"atlas-rooms/rest"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-rest/server"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func InitResource(si jsonapi.ServerInformation) func(db *gorm.DB) server.RouteInitializer {
	return func(db *gorm.DB) server.RouteInitializer {
		return func(router *mux.Router, l logrus.FieldLogger) {
			registerGet := rest.RegisterHandler(l)(si)
			registerInput := rest.RegisterInputHandler[RestModel](l)(si)
			r := router.PathPrefix("/users/{userId}").Subrouter()
			r.HandleFunc("", registerGet("get_user", handleGetUser(db))).Methods(http.MethodGet)
			r.HandleFunc("", registerInput("create_user", handleCreateUser(db))).Methods(http.MethodPost)
			r.HandleFunc("/items", registerGet("get_user_items", handleGetUserItems(db))).Methods(http.MethodGet)
			r.HandleFunc("/items/{itemName}", registerGet("get_user_item", handleGetUserItem(db))).Methods(http.MethodGet)
		}
	}
}

// handleCreateUser registers a user the chat platform has seen for the first
// time. The operation is idempotent; re-posting an existing id returns the
// existing record.
func handleCreateUser(db *gorm.DB) rest.InputHandler[RestModel] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input RestModel) http.HandlerFunc {
		return rest.ParseUserId(d.Logger(), func(userId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				m, err := NewProcessor(d.Logger(), d.Context(), db).Ensure(userId, input.Name)
				if err != nil {
					d.Logger().WithError(err).Errorf("Unable to create user [%d].", userId)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				rm, err := model.Map(Transform)(model.FixedProvider(m))()
				if err != nil {
					d.Logger().WithError(err).Errorf("Creating REST model.")
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestModel](d.Logger())(w)(c.ServerInformation())(queryParams)(rm)
			}
		})
	}
}

func handleGetUser(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseUserId(d.Logger(), func(userId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				m, err := NewProcessor(d.Logger(), d.Context(), db).GetById(userId)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				rm, err := model.Map(Transform)(model.FixedProvider(m))()
				if err != nil {
					d.Logger().WithError(err).Errorf("Creating REST model.")
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestModel](d.Logger())(w)(c.ServerInformation())(queryParams)(rm)
			}
		})
	}
}

// handleGetUserItems reads the persisted inventory directly. Hidden items are
// omitted unless the caller asks for an elevated view.
func handleGetUserItems(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseUserId(d.Logger(), func(userId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				m, err := NewProcessor(d.Logger(), d.Context(), db).GetById(userId)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				elevated := r.URL.Query().Get("elevated") == "true"
				rms, err := model.SliceMap(item.Transform)(model.FixedProvider(m.Items().VisibleItems(elevated)))(model.ParallelMap())()
				if err != nil {
					d.Logger().WithError(err).Errorf("Creating REST model.")
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[[]item.RestModel](d.Logger())(w)(c.ServerInformation())(queryParams)(rms)
			}
		})
	}
}

// handleGetUserItem inspects a single item. A hidden item is reported as
// missing to a non-elevated viewer.
func handleGetUserItem(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseUserId(d.Logger(), func(userId uint32) http.HandlerFunc {
			return rest.ParseItemName(d.Logger(), func(itemName string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					m, err := NewProcessor(d.Logger(), d.Context(), db).GetById(userId)
					if errors.Is(err, gorm.ErrRecordNotFound) {
						w.WriteHeader(http.StatusNotFound)
						return
					}
					if err != nil {
						w.WriteHeader(http.StatusInternalServerError)
						return
					}

					elevated := r.URL.Query().Get("elevated") == "true"
					i, ok := m.Items().Visible(itemName, elevated)
					if !ok {
						w.WriteHeader(http.StatusNotFound)
						return
					}

					rm, err := model.Map(item.Transform)(model.FixedProvider(i))()
					if err != nil {
						d.Logger().WithError(err).Errorf("Creating REST model.")
						w.WriteHeader(http.StatusInternalServerError)
						return
					}

					query := r.URL.Query()
					queryParams := jsonapi.ParseQueryFields(&query)
					server.MarshalResponse[item.RestModel](d.Logger())(w)(c.ServerInformation())(queryParams)(rm)
				}
			})
		})
	}
}
