// Package web serves the server-rendered front end: the log table with
// paging, filtering, and sorting controls, the stats panel, and the
// create/edit/delete forms.
package web

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/listing"
)

// Handler renders the web UI.
type Handler struct {
	svc    *climb.Service
	tmpl   *templates
	logger *slog.Logger
}

// NewHandler builds the web UI router.
func NewHandler(svc *climb.Service, logger *slog.Logger) (http.Handler, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	h := &Handler{svc: svc, tmpl: tmpl, logger: logger}

	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Get("/logs/new", h.handleNewForm)
	r.Post("/logs", h.handleCreate)
	r.Get("/logs/{id}/edit", h.handleEditForm)
	r.Post("/logs/{id}", h.handleUpdate)
	r.Get("/logs/{id}/delete", h.handleConfirmDelete)
	r.Post("/logs/{id}/delete", h.handleDelete)

	return r, nil
}

type sortOption struct {
	Key      string
	Label    string
	Selected bool
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type listData struct {
	State       listing.State
	Stats       *climb.Stats
	Sorts       []sortOption
	Pages       []pageLink
	Query       string
	Alert       string
	PageSizes   []int
	ClimbTypes  []climb.ClimbType
	Progresses  []climb.Progress
	SortURL     func(string) string
	PageSizeURL func(int) string
}

var sortLabels = map[string]string{
	"date_desc":     "Date (newest first)",
	"date_asc":      "Date (oldest first)",
	"grade_asc":     "Grade (easiest first)",
	"grade_desc":    "Grade (hardest first)",
	"location_asc":  "Location (A-Z)",
	"location_desc": "Location (Z-A)",
	"route_asc":     "Route (A-Z)",
	"route_desc":    "Route (Z-A)",
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := listing.QueryFromValues(r.URL.Query())
	state := listing.State{Query: q}

	var alert string
	result, err := h.svc.List(r.Context(), q.Options())
	if err != nil {
		// Transport errors leave prior (empty) state and surface an alert.
		alert = "Could not load climb logs. Please try again."
		h.logError("list logs", err)
		result = &climb.ListResult{Page: q.Page, PageSize: q.PageSize}
	}
	state = listing.Apply(state, listing.Loaded{Result: *result})

	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.logError("load stats", err)
		stats = &climb.Stats{ByType: map[string]int{}}
	}

	data := listData{
		State:      state,
		Stats:      stats,
		Sorts:      h.sortOptions(state),
		Pages:      h.pageLinks(state),
		Query:      state.Values().Encode(),
		Alert:      alert,
		PageSizes:  listing.PageSizes,
		ClimbTypes: []climb.ClimbType{climb.TypeBoulder, climb.TypeTopRope, climb.TypeSport, climb.TypeTrad},
		Progresses: []climb.Progress{climb.ProgressComplete, climb.ProgressIncomplete},
		SortURL: func(sort string) string {
			next := listing.Apply(state, listing.SetSort{Sort: sort})
			return "/?" + next.Values().Encode()
		},
		PageSizeURL: func(size int) string {
			next := listing.Apply(state, listing.SetPageSize{Size: size})
			return "/?" + next.Values().Encode()
		},
	}

	h.render(w, "list.html", data)
}

func (h *Handler) sortOptions(state listing.State) []sortOption {
	var opts []sortOption
	for _, key := range listing.AvailableSorts(state.Types) {
		opts = append(opts, sortOption{
			Key:      key,
			Label:    sortLabels[key],
			Selected: key == state.Sort,
		})
	}
	return opts
}

func (h *Handler) pageLinks(state listing.State) []pageLink {
	last := (state.Total + state.PageSize - 1) / state.PageSize
	if last < 1 {
		last = 1
	}
	links := make([]pageLink, 0, last)
	for n := 1; n <= last; n++ {
		next := listing.Apply(state, listing.SetPage{Page: n})
		links = append(links, pageLink{
			Number:  n,
			URL:     "/?" + next.Values().Encode(),
			Current: n == state.Page,
		})
	}
	return links
}

type formData struct {
	Title    string
	Action   string
	Values   climb.Input
	Errors   climb.FieldErrors
	Alert    string
	IsEdit   bool
	ID       string
	HasImage bool
	VGrades  []string
	YDS      []string
}

func (h *Handler) handleNewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "form.html", formData{
		Title:   "New climb",
		Action:  "/logs",
		VGrades: climb.VGrades,
		YDS:     climb.YDSGrades,
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, img, _, err := parseForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err = h.svc.Create(r.Context(), in, img)
	if err != nil {
		h.renderFormError(w, formData{
			Title:   "New climb",
			Action:  "/logs",
			Values:  in,
			VGrades: climb.VGrades,
			YDS:     climb.YDSGrades,
		}, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.notFoundOrError(w, err)
		return
	}

	h.render(w, "form.html", formData{
		Title:    "Edit climb",
		Action:   "/logs/" + url.PathEscape(id),
		Values:   inputFromLog(log),
		IsEdit:   true,
		ID:       log.ID,
		HasImage: log.HasImage,
		VGrades:  climb.VGrades,
		YDS:      climb.YDSGrades,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, img, removeImage, err := parseForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err = h.svc.Update(r.Context(), id, in, img, removeImage)
	if err != nil {
		if errors.Is(err, climb.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderFormError(w, formData{
			Title:   "Edit climb",
			Action:  "/logs/" + url.PathEscape(id),
			Values:  in,
			IsEdit:  true,
			ID:      id,
			VGrades: climb.VGrades,
			YDS:     climb.YDSGrades,
		}, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type confirmData struct {
	Log  *climb.Log
	Back string
}

func (h *Handler) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	log, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.notFoundOrError(w, err)
		return
	}

	h.render(w, "confirm.html", confirmData{
		Log:  log,
		Back: r.URL.Query().Get("back"),
	})
}

// handleDelete deletes after confirmation, then steps the list back one page
// when the deleted entry was the last item on the final page.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	back, _ := url.ParseQuery(r.FormValue("back"))
	q := listing.QueryFromValues(back)
	state := listing.State{Query: q}

	if result, err := h.svc.List(r.Context(), q.Options()); err == nil {
		state = listing.Apply(state, listing.Loaded{Result: *result})
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.notFoundOrError(w, err)
		return
	}

	state = listing.Apply(state, listing.Deleted{})
	http.Redirect(w, r, "/?"+state.Values().Encode(), http.StatusSeeOther)
}

func (h *Handler) renderFormError(w http.ResponseWriter, data formData, err error) {
	var verr *climb.ValidationError
	if errors.As(err, &verr) {
		data.Errors = verr.Fields
	} else {
		data.Alert = "Could not save the climb log. Please try again."
		h.logError("save log", err)
	}
	w.WriteHeader(http.StatusBadRequest)
	h.render(w, "form.html", data)
}

func (h *Handler) notFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, climb.ErrNotFound) {
		http.Error(w, "Climb log not found", http.StatusNotFound)
		return
	}
	h.logError("load log", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// render buffers the page so a template failure can still produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.render(&buf, name, data); err != nil {
		h.logError("render "+name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) logError(op string, err error) {
	if h.logger != nil {
		h.logger.Error("web request failed", "op", op, "error", err)
	}
}

func parseForm(r *http.Request) (climb.Input, *climb.ImageUpload, bool, error) {
	if err := r.ParseMultipartForm(8 << 20); err != nil && err != http.ErrNotMultipart {
		return climb.Input{}, nil, false, err
	}

	in := climb.Input{
		Date:        r.FormValue("date"),
		Environment: r.FormValue("environment"),
		Location:    r.FormValue("location"),
		RouteName:   r.FormValue("routeName"),
		ClimbType:   r.FormValue("climbType"),
		GradeSystem: r.FormValue("gradeSystem"),
		Grade:       r.FormValue("grade"),
		Progress:    r.FormValue("progress"),
	}
	removeImage := r.FormValue("removeImage") == "1"

	img, err := readImageFile(r)
	if err != nil {
		return climb.Input{}, nil, false, err
	}
	return in, img, removeImage, nil
}

func readImageFile(r *http.Request) (*climb.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, climb.MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		// Empty file input on a plain form submit means no image chosen.
		return nil, nil
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &climb.ImageUpload{ContentType: contentType, Data: data}, nil
}

func inputFromLog(log *climb.Log) climb.Input {
	return climb.Input{
		Date:        log.Date,
		Environment: string(log.Environment),
		Location:    log.Location,
		RouteName:   log.RouteName,
		ClimbType:   string(log.ClimbType),
		GradeSystem: string(log.GradeSystem),
		Grade:       log.Grade,
		Progress:    string(log.Progress),
	}
}
