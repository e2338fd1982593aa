package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/console"
	"github.com/app-sre/dbconsole/pkg/form"
	"github.com/app-sre/dbconsole/pkg/render"
)

const maxFormSize = 1 << 20

// Each request gets its own console, so the response carries exactly what
// the request rendered.

func CreateDatabase(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.CreateDatabase) {
		m.CreateDatabase(ctx, f)
	})
}

func CreateTable(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.CreateTable) {
		m.CreateTable(ctx, f)
	})
}

// DropDatabase takes the confirmation answer from the form.
func DropDatabase(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.DropDatabase) {
		m.DropDatabase(ctx, f, answer(f.Confirm))
	})
}

func DropTable(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.DropTable) {
		m.DropTable(ctx, f, answer(f.Confirm))
	})
}

func InsertData(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.Insert) {
		m.InsertData(ctx, f)
	})
}

func SelectData(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.Select) {
		m.SelectData(ctx, f)
	})
}

func UpdateData(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.Update) {
		m.UpdateData(ctx, f)
	})
}

func DeleteColumn(cfg *dbconsole.Config) http.HandlerFunc {
	return master(cfg, func(ctx context.Context, m *console.Master, f *form.DeleteColumn) {
		m.DeleteColumn(ctx, f)
	})
}

func Slaves(cfg *dbconsole.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := console.NewMaster(cfg)
		m.LoadSlaves(r.Context())
		respond(cfg, w, r, http.StatusOK, m.Slaves().View())
	}
}

// Query serves free-form SQL for both roles.
func Query(cfg *dbconsole.Config) http.HandlerFunc {
	return slave(cfg, func(ctx context.Context, s *console.Slave, f *form.Query) {
		s.ExecuteQuery(ctx, f)
	})
}

func SearchRecords(cfg *dbconsole.Config) http.HandlerFunc {
	return slave(cfg, func(ctx context.Context, s *console.Slave, f *form.Search) {
		s.SearchRecords(ctx, f)
	})
}

func UpdateRecords(cfg *dbconsole.Config) http.HandlerFunc {
	return slave(cfg, func(ctx context.Context, s *console.Slave, f *form.UpdateRecords) {
		s.UpdateRecords(ctx, f)
	})
}

func DeleteRecords(cfg *dbconsole.Config) http.HandlerFunc {
	return slave(cfg, func(ctx context.Context, s *console.Slave, f *form.DeleteRecords) {
		s.DeleteRecords(ctx, f)
	})
}

func master[T any](cfg *dbconsole.Config, op func(context.Context, *console.Master, *T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := new(T)
		if !decode(cfg, w, r, f) {
			return
		}

		m := console.NewMaster(cfg)
		op(r.Context(), m, f)
		respond(cfg, w, r, http.StatusOK, m.Result().View())
	}
}

func slave[T any](cfg *dbconsole.Config, op func(context.Context, *console.Slave, *T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := new(T)
		if !decode(cfg, w, r, f) {
			return
		}

		s := console.NewSlave(cfg)
		op(r.Context(), s, f)
		respond(cfg, w, r, http.StatusOK, s.Result().View())
	}
}

func decode(cfg *dbconsole.Config, w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		cfg.Logger.Debugf("Unable to decode request body: %s", err)
		respond(cfg, w, r, http.StatusBadRequest, render.View{Kind: render.KindError, Message: "Invalid JSON"})
		return false
	}
	return true
}

func respond(cfg *dbconsole.Config, w http.ResponseWriter, r *http.Request, code int, v render.View) {
	if err := render.Respond(w, r, code, v); err != nil {
		cfg.Logger.Errorf("Unable to write response: %s", err)
	}
}

func answer(confirmed bool) console.Confirmer {
	return console.ConfirmFunc(func(context.Context, string) bool {
		return confirmed
	})
}
