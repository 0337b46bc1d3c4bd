package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ssargent/dataprov/pkg/codec"
	"github.com/ssargent/dataprov/pkg/record"
	"github.com/ssargent/dataprov/pkg/service"
)

const contentTypeCSV = "text/plain; charset=utf-8"

// TabularResource serves one record kind as delimited text
type TabularResource[V any] struct {
	path        string
	lookupField string
	service     *service.Service[V]
	codec       *codec.Tabular[V]
}

// NewTabularResource serves svc under /path. lookupField names the column
// reachable through /path/{lookupField}/{value}; empty disables the route.
func NewTabularResource[V any](path, lookupField string, svc *service.Service[V]) *TabularResource[V] {
	return &TabularResource[V]{
		path:        path,
		lookupField: lookupField,
		service:     svc,
		codec:       codec.NewTabular(svc.Schema()),
	}
}

// Kind returns the record kind name
func (t *TabularResource[V]) Kind() string {
	return t.service.Kind()
}

// Path returns the route prefix
func (t *TabularResource[V]) Path() string {
	return t.path
}

// Len returns the number of stored records
func (t *TabularResource[V]) Len() int {
	return t.service.Len()
}

// Mount registers the collection routes on r
func (t *TabularResource[V]) Mount(r chi.Router, metrics *Metrics, maxBodyBytes int64) {
	h := &tabularHandler[V]{resource: t, metrics: metrics, maxBodyBytes: maxBodyBytes}
	base := "/" + t.path

	r.Route(base, func(r chi.Router) {
		r.Get("/", metrics.InstrumentHandler("GET", base, h.handleList))
		r.Post("/", metrics.InstrumentHandler("POST", base, h.handleCreate))
		r.Get("/{id}", metrics.InstrumentHandler("GET", base+"/{id}", h.handleGet))
		r.Put("/{id}", metrics.InstrumentHandler("PUT", base+"/{id}", h.handleUpdate))
		r.Delete("/{id}", metrics.InstrumentHandler("DELETE", base+"/{id}", h.handleDelete))

		if t.lookupField != "" {
			route := fmt.Sprintf("/%s/{value}", t.lookupField)
			r.Get(route, metrics.InstrumentHandler("GET", base+route, h.handleFind))
		}
	})
}

type tabularHandler[V any] struct {
	resource     *TabularResource[V]
	metrics      *Metrics
	maxBodyBytes int64
}

// handleList godoc
//
//	@Summary		List records
//	@Description	Get every record of the kind as delimited text
//	@Tags			records
//	@Produce		plain
//	@Success		200	{string}	string	"header plus one row per record"
//	@Router			/finances [get]
//	@Router			/transport [get]
func (h *tabularHandler[V]) handleList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records := h.resource.service.GetAll()
	h.writeRecords(w, http.StatusOK, h.resource.path+".csv", records, "list", start)
}

// handleGet godoc
//
//	@Summary		Get a record
//	@Description	Get one record by id as delimited text
//	@Tags			records
//	@Produce		plain
//	@Param			id	path		string	true	"Record id"
//	@Success		200	{string}	string
//	@Failure		404	{object}	APIResponse
//	@Router			/finances/{id} [get]
//	@Router			/transport/{id} [get]
func (h *tabularHandler[V]) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	v, ok := h.resource.service.Get(id)
	if !ok {
		h.fail(w, "get", start, fmt.Errorf("%w: %s", record.ErrNotFound, id), http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", h.resource.Kind(), id)
	h.writeRecords(w, http.StatusOK, filename, []V{v}, "get", start)
}

// handleFind godoc
//
//	@Summary		Find records by field
//	@Description	Get the records whose lookup field equals the value, ignoring case
//	@Tags			records
//	@Produce		plain
//	@Param			value	path		string	true	"Value to match"
//	@Success		200		{string}	string
//	@Router			/finances/category/{value} [get]
//	@Router			/transport/area/{value} [get]
func (h *tabularHandler[V]) handleFind(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	value := chi.URLParam(r, "value")

	records, err := h.resource.service.FindBy(h.resource.lookupField, value)
	if err != nil {
		h.fail(w, "find", start, err, errorStatus(err))
		return
	}

	h.writeRecords(w, http.StatusOK, h.resource.path+".csv", records, "find", start)
}

// handleCreate godoc
//
//	@Summary		Create a record
//	@Description	Create the first record in the body. A blank id is replaced with a generated one.
//	@Tags			records
//	@Accept			plain
//	@Produce		plain
//	@Param			body	body		string	true	"Header plus at least one row"
//	@Success		201		{string}	string
//	@Failure		400		{object}	APIResponse
//	@Router			/finances [post]
//	@Router			/transport [post]
func (h *tabularHandler[V]) handleCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	v, err := h.readRecord(w, r)
	if err != nil {
		h.fail(w, "create", start, err, errorStatus(err))
		return
	}

	created, err := h.resource.service.Create(v)
	if err != nil {
		h.fail(w, "create", start, err, errorStatus(err))
		return
	}

	h.writeRecords(w, http.StatusCreated, "", []V{created}, "create", start)
}

// handleUpdate godoc
//
//	@Summary		Update a record
//	@Description	Replace the record stored under id with the first record in the body
//	@Tags			records
//	@Accept			plain
//	@Produce		plain
//	@Param			id		path		string	true	"Record id"
//	@Param			body	body		string	true	"Header plus at least one row"
//	@Success		200		{string}	string
//	@Failure		400		{object}	APIResponse
//	@Router			/finances/{id} [put]
//	@Router			/transport/{id} [put]
func (h *tabularHandler[V]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	v, err := h.readRecord(w, r)
	if err != nil {
		h.fail(w, "update", start, err, errorStatus(err))
		return
	}

	updated, err := h.resource.service.Update(id, v)
	if err != nil {
		status := errorStatus(err)
		// An absent id on update is reported as a bad request
		if errors.Is(err, record.ErrNotFound) {
			status = http.StatusBadRequest
		}
		h.fail(w, "update", start, err, status)
		return
	}

	h.writeRecords(w, http.StatusOK, "", []V{updated}, "update", start)
}

// handleDelete godoc
//
//	@Summary		Delete a record
//	@Tags			records
//	@Param			id	path	string	true	"Record id"
//	@Success		204
//	@Failure		404	{object}	APIResponse
//	@Router			/finances/{id} [delete]
//	@Router			/transport/{id} [delete]
func (h *tabularHandler[V]) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	if !h.resource.service.Delete(id) {
		h.fail(w, "delete", start, fmt.Errorf("%w: %s", record.ErrNotFound, id), http.StatusNotFound)
		return
	}

	h.metrics.RecordOperation(h.resource.Kind(), "delete", true, time.Since(start))
	w.WriteHeader(http.StatusNoContent)
}

// readRecord decodes the body and returns its first record
func (h *tabularHandler[V]) readRecord(w http.ResponseWriter, r *http.Request) (*V, error) {
	body, err := readBody(w, r, h.maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	records, err := h.resource.codec.Decode(string(body))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: request body contains no records", record.ErrInvalidInput)
	}
	return &records[0], nil
}

func (h *tabularHandler[V]) writeRecords(w http.ResponseWriter, status int, filename string, records []V, op string, start time.Time) {
	text, err := h.resource.codec.Encode(records)
	if err != nil {
		h.fail(w, op, start, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeCSV)
	if filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))

	h.metrics.RecordOperation(h.resource.Kind(), op, true, time.Since(start))
}

func (h *tabularHandler[V]) fail(w http.ResponseWriter, op string, start time.Time, err error, status int) {
	h.metrics.RecordOperation(h.resource.Kind(), op, false, time.Since(start))
	sendError(w, err.Error(), status)
}
