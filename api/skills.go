package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/pkg/models"
	"github.com/kfglabs/directory/pkg/repository"
)

type SkillsHandler struct {
	skillRepo    repository.SkillRepo
	employeeRepo repository.EmployeeRepo
}

func NewSkillsHandler(sr repository.SkillRepo, er repository.EmployeeRepo) *SkillsHandler {
	return &SkillsHandler{skillRepo: sr, employeeRepo: er}
}

func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "skillNew", body); err != nil {
		writeError(w, err)
		return
	}

	var s models.Skill
	if err := json.Unmarshal(body, &s); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}

	created, err := h.skillRepo.CreateSkill(r.Context(), &s)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"skill": created}, http.StatusCreated)
}

func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := map[string]any{}
	var f models.SkillFilter
	if q.Has("name") {
		v := q.Get("name")
		filters["name"] = v
		f.Name = &v
	}
	// query values arrive as strings; coerce before schema validation
	if q.Has("minEmployees") {
		n, err := strconv.ParseInt(q.Get("minEmployees"), 10, 64)
		if err != nil {
			writeError(w, apperror.Invalid("minEmployees must be an integer"))
			return
		}
		filters["minEmployees"] = n
		f.MinEmployees = &n
	}
	for key := range q {
		if _, ok := filters[key]; !ok {
			filters[key] = q.Get(key)
		}
	}
	if err := validateQuery(r.Context(), "skillSearch", filters); err != nil {
		writeError(w, err)
		return
	}

	skills, err := h.skillRepo.SearchSkills(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"skills": skills}, http.StatusOK)
}

func (h *SkillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	s, err := h.skillRepo.GetSkill(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"skill": s}, http.StatusOK)
}

func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "skillUpdate", body); err != nil {
		writeError(w, err)
		return
	}

	var p models.SkillPatch
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}

	s, err := h.skillRepo.UpdateSkill(r.Context(), id, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"skill": s}, http.StatusOK)
}

func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.skillRepo.DeleteSkill(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"deleted": id}, http.StatusOK)
}

// Employees lists everyone holding the given skill.
func (h *SkillsHandler) Employees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	employees, err := h.employeeRepo.FindBySkill(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"employees": employees}, http.StatusOK)
}
