package room

import (
	"errors"
	"net/http"

	"atlas-rooms/item"
	"atlas-rooms/rest"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-rest/server"
	"github.com/google/uuid"
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
			r := router.PathPrefix("/rooms").Subrouter()
			r.HandleFunc("", registerGet("get_rooms", handleGetRooms(db))).Methods(http.MethodGet)
			r.HandleFunc("", registerInput("create_room", handleCreateRoom(db))).Methods(http.MethodPost)
			r.HandleFunc("/{roomId}", registerGet("get_room", handleGetRoom(db))).Methods(http.MethodGet)
			r.HandleFunc("/{roomId}", registerGet("delete_room", handleDeleteRoom(db))).Methods(http.MethodDelete)
			r.HandleFunc("/{roomId}/items", registerGet("get_room_items", handleGetRoomItems(db))).Methods(http.MethodGet)
			r.HandleFunc("/{roomId}/items/{itemName}", registerGet("get_room_item", handleGetRoomItem(db))).Methods(http.MethodGet)
		}
	}
}

func handleGetRooms(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ms, err := NewProcessor(d.Logger(), d.Context(), db).AllProvider()()
			if err != nil {
				d.Logger().WithError(err).Errorf("Unable to retrieve rooms.")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			rms, err := model.SliceMap(Transform)(model.FixedProvider(ms))(model.ParallelMap())()
			if err != nil {
				d.Logger().WithError(err).Errorf("Creating REST model.")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			query := r.URL.Query()
			queryParams := jsonapi.ParseQueryFields(&query)
			server.MarshalResponse[[]RestModel](d.Logger())(w)(c.ServerInformation())(queryParams)(rms)
		}
	}
}

func handleGetRoom(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRoomId(d.Logger(), func(roomId uuid.UUID) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				m, err := NewProcessor(d.Logger(), d.Context(), db).GetById(roomId)
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

// handleGetRoomItems serves the room's contents from the in-memory mirror.
// Hidden items are omitted unless the caller asks for an elevated view.
func handleGetRoomItems(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRoomId(d.Logger(), func(roomId uuid.UUID) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				items, err := NewProcessor(d.Logger(), d.Context(), db).ItemsProvider(roomId)()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				elevated := r.URL.Query().Get("elevated") == "true"
				rms, err := model.SliceMap(item.Transform)(model.FixedProvider(items.VisibleItems(elevated)))(model.ParallelMap())()
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

// handleGetRoomItem inspects a single item in the room. A hidden item is
// reported as missing to a non-elevated viewer.
func handleGetRoomItem(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRoomId(d.Logger(), func(roomId uuid.UUID) http.HandlerFunc {
			return rest.ParseItemName(d.Logger(), func(itemName string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					items, err := NewProcessor(d.Logger(), d.Context(), db).ItemsProvider(roomId)()
					if errors.Is(err, gorm.ErrRecordNotFound) {
						w.WriteHeader(http.StatusNotFound)
						return
					}
					if err != nil {
						w.WriteHeader(http.StatusInternalServerError)
						return
					}

					elevated := r.URL.Query().Get("elevated") == "true"
					i, ok := items.Visible(itemName, elevated)
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

func handleCreateRoom(db *gorm.DB) rest.InputHandler[RestModel] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input RestModel) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			m, err := NewProcessor(d.Logger(), d.Context(), db).CreateAndEmit(input.Name)
			if err != nil {
				d.Logger().WithError(err).Errorf("Unable to create room [%s].", input.Name)
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
	}
}

func handleDeleteRoom(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRoomId(d.Logger(), func(roomId uuid.UUID) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				err := NewProcessor(d.Logger(), d.Context(), db).DeleteAndEmit(roomId)
				if err != nil {
					d.Logger().WithError(err).Errorf("Unable to delete room [%s].", roomId.String())
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			}
		})
	}
}
