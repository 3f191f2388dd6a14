package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/Chronicle20/atlas-rest/server"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/sirupsen/logrus"
)

type HandlerDependency struct {
	l   logrus.FieldLogger
	ctx context.Context
}

func (h HandlerDependency) Logger() logrus.FieldLogger {
	return h.l
}

func (h HandlerDependency) Context() context.Context {
	return h.ctx
}

type HandlerContext struct {
	si jsonapi.ServerInformation
}

func (h HandlerContext) ServerInformation() jsonapi.ServerInformation {
	return h.si
}

type GetHandler func(d *HandlerDependency, c *HandlerContext) http.HandlerFunc

type InputHandler[M any] func(d *HandlerDependency, c *HandlerContext, model M) http.HandlerFunc

func ParseInput[M any](d *HandlerDependency, c *HandlerContext, next InputHandler[M]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var model M

		body, err := io.ReadAll(r.Body)
		if err != nil {
			d.l.WithError(err).Errorln("Reading request body.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		err = jsonapi.Unmarshal(body, &model)
		if err != nil {
			d.l.WithError(err).Errorln("Deserializing request body.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		next(d, c, model)(w, r)
	}
}

func RegisterHandler(l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler GetHandler) http.HandlerFunc {
		return func(handlerName string, handler GetHandler) http.HandlerFunc {
			return server.RetrieveSpan(l, handlerName, context.Background(), func(sl logrus.FieldLogger, sctx context.Context) http.HandlerFunc {
				fl := sl.WithFields(logrus.Fields{"originator": handlerName, "type": "rest_handler"})
				return server.ParseTenant(fl, sctx, func(tl logrus.FieldLogger, tctx context.Context) http.HandlerFunc {
					return handler(&HandlerDependency{l: tl, ctx: tctx}, &HandlerContext{si: si})
				})
			})
		}
	}
}

func RegisterInputHandler[M any](l logrus.FieldLogger) func(si jsonapi.ServerInformation) func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
	return func(si jsonapi.ServerInformation) func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
		return func(handlerName string, handler InputHandler[M]) http.HandlerFunc {
			return server.RetrieveSpan(l, handlerName, context.Background(), func(sl logrus.FieldLogger, sctx context.Context) http.HandlerFunc {
				fl := sl.WithFields(logrus.Fields{"originator": handlerName, "type": "rest_handler"})
				return server.ParseTenant(fl, sctx, func(tl logrus.FieldLogger, tctx context.Context) http.HandlerFunc {
					d := &HandlerDependency{l: tl, ctx: tctx}
					c := &HandlerContext{si: si}
					return ParseInput[M](d, c, handler)
				})
			})
		}
	}
}

type RoomIdHandler func(roomId uuid.UUID) http.HandlerFunc

func ParseRoomId(l logrus.FieldLogger, next RoomIdHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomId, err := uuid.Parse(mux.Vars(r)["roomId"])
		if err != nil {
			l.WithError(err).Errorf("Unable to properly parse roomId from path.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(roomId)(w, r)
	}
}

type UserIdHandler func(userId uint32) http.HandlerFunc

func ParseUserId(l logrus.FieldLogger, next UserIdHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 32)
		if err != nil {
			l.WithError(err).Errorf("Unable to properly parse userId from path.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(uint32(userId))(w, r)
	}
}

type ItemNameHandler func(itemName string) http.HandlerFunc

func ParseItemName(l logrus.FieldLogger, next ItemNameHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemName := mux.Vars(r)["itemName"]
		if itemName == "" {
			l.Errorf("Unable to properly parse itemName from path.")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(itemName)(w, r)
	}
}
