package dto

import (
	"bytes"
	"encoding/json"
)

// NullableString distingue un campo ausente (Set=false) de un null explícito (Set=true, Value=nil).
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON solo se invoca cuando el campo viene en el JSON.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// CreateLeadRequest body para POST /api/leads.
type CreateLeadRequest struct {
	Name            string   `json:"nombre"`
	Company         string   `json:"empresa,omitempty"`
	Industry        string   `json:"rubro,omitempty"`
	City            string   `json:"ciudad,omitempty"`
	Phone           string   `json:"telefono,omitempty"`
	WhatsApp        string   `json:"whatsapp,omitempty"`
	Instagram       string   `json:"instagram,omitempty"`
	Website         string   `json:"web,omitempty"`
	StageID         string   `json:"stageId,omitempty"`
	Priority        string   `json:"prioridad,omitempty"`
	Source          string   `json:"fuente,omitempty"`
	Note            string   `json:"nota,omitempty"`
	LastContactedAt string   `json:"ultimoContacto,omitempty"`
	NextFollowUpAt  string   `json:"proximoSeguimiento,omitempty"`
	TagIDs          []string `json:"tagIds,omitempty"`
}

// UpdateLeadRequest body para PATCH /api/leads/:id. Campo ausente o null = sin cambio,
// salvo las fechas, donde null las borra.
type UpdateLeadRequest struct {
	Name            *string        `json:"nombre"`
	Company         *string        `json:"empresa"`
	Industry        *string        `json:"rubro"`
	City            *string        `json:"ciudad"`
	Phone           *string        `json:"telefono"`
	WhatsApp        *string        `json:"whatsapp"`
	Instagram       *string        `json:"instagram"`
	Website         *string        `json:"web"`
	StageID         *string        `json:"stageId"`
	Priority        *string        `json:"prioridad"`
	Source          *string        `json:"fuente"`
	Note            *string        `json:"nota"`
	LastContactedAt NullableString `json:"ultimoContacto" swaggertype:"string"`
	NextFollowUpAt  NullableString `json:"proximoSeguimiento" swaggertype:"string"`
	TagIDs          *[]string      `json:"tagIds"`
}

// StageResponse etapa del pipeline.
type StageResponse struct {
	ID        string `json:"id"`
	Key       string `json:"key,omitempty"`
	Name      string `json:"nombre"`
	Color     string `json:"color"`
	Order     int    `json:"orden"`
	CreatedAt string `json:"creadoEn"`
	UpdatedAt string `json:"actualizadoEn"`
}

// TagResponse etiqueta.
type TagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Color     string `json:"color"`
	CreatedAt string `json:"creadoEn"`
	UpdatedAt string `json:"actualizadoEn"`
}

// DealResponse deal del lead; montos en centavos.
type DealResponse struct {
	ID                string `json:"id"`
	LeadID            string `json:"leadId"`
	Currency          string `json:"currency"`
	MonthlyPriceCents int64  `json:"monthlyPriceCents"`
	SetupPriceCents   int64  `json:"setupPriceCents"`
	ClosedAt          string `json:"closedAt"`
	Notes             string `json:"notes,omitempty"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// InteractionResponse interacción registrada.
type InteractionResponse struct {
	ID        string `json:"id"`
	LeadID    string `json:"leadId"`
	Channel   string `json:"canal"`
	Type      string `json:"tipo"`
	Content   string `json:"contenido,omitempty"`
	Date      string `json:"fecha"`
	CreatedAt string `json:"creadoEn"`
}

// LeadChangeResponse entrada del historial.
type LeadChangeResponse struct {
	ID        string `json:"id"`
	LeadID    string `json:"leadId"`
	Field     string `json:"campo"`
	Before    string `json:"valorAntes"`
	After     string `json:"valorDespues"`
	CreatedAt string `json:"creadoEn"`
}

// LeadResponse lead con etapa, etiquetas y deal.
type LeadResponse struct {
	ID              string         `json:"id"`
	Name            string         `json:"nombre"`
	Company         string         `json:"empresa"`
	Industry        string         `json:"rubro"`
	City            string         `json:"ciudad"`
	Phone           string         `json:"telefono"`
	WhatsApp        string         `json:"whatsapp"`
	Instagram       string         `json:"instagram"`
	Website         string         `json:"web"`
	StageID         string         `json:"stageId"`
	Priority        string         `json:"prioridad"`
	Source          string         `json:"fuente"`
	Note            string         `json:"nota"`
	LastContactedAt *string        `json:"ultimoContacto"`
	NextFollowUpAt  *string        `json:"proximoSeguimiento"`
	CreatedAt       string         `json:"creadoEn"`
	UpdatedAt       string         `json:"actualizadoEn"`
	Stage           *StageResponse `json:"stage"`
	Tags            []TagResponse  `json:"tags"`
	Deal            *DealResponse  `json:"deal"`
}

// LeadDetailResponse detalle de GET /api/leads/:id con interacciones (fecha desc) y cambios (creado desc).
type LeadDetailResponse struct {
	LeadResponse
	Interactions []InteractionResponse `json:"interacciones"`
	Changes      []LeadChangeResponse  `json:"cambios"`
}

// CloseLeadRequest body para POST /api/leads/:id/close.
type CloseLeadRequest struct {
	Currency          string `json:"currency"`
	MonthlyPriceCents int64  `json:"monthlyPriceCents"`
	SetupPriceCents   int64  `json:"setupPriceCents"`
	ClosedAt          string `json:"closedAt,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// CloseLeadResponse respuesta de cierre.
type CloseLeadResponse struct {
	OK   bool          `json:"ok"`
	Lead *LeadResponse `json:"lead"`
	Deal *DealResponse `json:"deal"`
}

// CreateInteractionRequest body para POST /api/leads/:id/interacciones.
type CreateInteractionRequest struct {
	Channel string `json:"canal"`
	Type    string `json:"tipo"`
	Content string `json:"contenido,omitempty"`
	Date    string `json:"fecha,omitempty"`
}

// LeadActionRequest body para POST /api/leads/:id/actions.
type LeadActionRequest struct {
	Action         string `json:"action"` // contactado | followup | respondio
	Channel        string `json:"canal,omitempty"`
	Content        string `json:"contenido,omitempty"`
	NextFollowUpAt string `json:"proximoSeguimiento,omitempty"`
}

// OKResponse respuesta mínima de operaciones sin cuerpo.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ImportLeadsRequest body para POST /api/leads/import. Mapping: campo del lead -> encabezado CSV.
type ImportLeadsRequest struct {
	CSV     string            `json:"csv"`
	Mapping map[string]string `json:"mapping"`
}

// ImportLeadsResponse resultado de la importación.
type ImportLeadsResponse struct {
	OK      bool `json:"ok"`
	Count   int  `json:"count"`
	Skipped int  `json:"skipped"`
}

// DuplicateLeadDTO lead dentro de un grupo de duplicados.
type DuplicateLeadDTO struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Company   string `json:"empresa"`
	Phone     string `json:"telefono"`
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Website   string `json:"web"`
	CreatedAt string `json:"creadoEn"`
}

// DuplicateGroupDTO grupo de leads que comparten una clave de identidad.
// GET /api/leads/duplicates responde un arreglo de estos grupos.
type DuplicateGroupDTO struct {
	Type  string             `json:"type"`
	Value string             `json:"value"`
	Leads []DuplicateLeadDTO `json:"leads"`
}

// MergeLeadsRequest body para POST /api/leads/merge.
type MergeLeadsRequest struct {
	PrimaryID string   `json:"primaryId"`
	MergeIDs  []string `json:"mergeIds"`
}

// MergeLeadsResponse resultado de la fusión.
type MergeLeadsResponse struct {
	OK     bool          `json:"ok"`
	Merged int           `json:"merged"`
	Lead   *LeadResponse `json:"lead"`
}
