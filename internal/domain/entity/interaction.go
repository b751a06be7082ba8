package entity

import "time"

// Canales de interacción.
const (
	ChannelWhatsApp  = "WHATSAPP"
	ChannelCall      = "LLAMADA"
	ChannelInstagram = "INSTAGRAM"
	ChannelEmail     = "EMAIL"
	ChannelOther     = "OTRO"
)

// Tipos de interacción.
const (
	InteractionFirstContact = "PRIMER_CONTACTO"
	InteractionFollowUp     = "FOLLOW_UP"
	InteractionReply        = "RESPUESTA"
	InteractionMeeting      = "REUNION"
	InteractionClose        = "CIERRE"
	InteractionNote         = "NOTA"
)

// IsValidChannel indica si c es un canal conocido.
func IsValidChannel(c string) bool {
	switch c {
	case ChannelWhatsApp, ChannelCall, ChannelInstagram, ChannelEmail, ChannelOther:
		return true
	}
	return false
}

// IsValidInteractionType indica si t es un tipo de interacción conocido.
func IsValidInteractionType(t string) bool {
	switch t {
	case InteractionFirstContact, InteractionFollowUp, InteractionReply,
		InteractionMeeting, InteractionClose, InteractionNote:
		return true
	}
	return false
}

// Interaction evento de contacto con un lead. Solo se agrega, nunca se edita.
type Interaction struct {
	ID        string
	LeadID    string
	Channel   string
	Type      string
	Content   string
	Date      time.Time
	CreatedAt time.Time
}
