// Package crm contiene los servicios de dominio del pipeline comercial: normalización de
// identidad, detección de duplicados, fusión de leads, historial de cambios e importación CSV.
// No depende de la persistencia; los casos de uso le entregan los datos ya leídos.
package crm

import "strings"

// Normalize recorta espacios y pasa a minúsculas. Entrada vacía devuelve "".
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IdentityKeys claves de identidad de un lead, ya normalizadas. Una clave vacía no identifica.
type IdentityKeys struct {
	Phone       string
	WhatsApp    string
	Instagram   string
	Website     string
	NameCompany string
}

// KeysFor calcula las cinco claves de identidad.
// NameCompany es nombre|empresa; si la empresa está vacía se quita el separador final.
func KeysFor(name, company, phone, whatsapp, instagram, website string) IdentityKeys {
	return IdentityKeys{
		Phone:       Normalize(phone),
		WhatsApp:    Normalize(whatsapp),
		Instagram:   Normalize(instagram),
		Website:     Normalize(website),
		NameCompany: nameCompanyKey(name, company),
	}
}

func nameCompanyKey(name, company string) string {
	key := Normalize(name) + "|" + Normalize(company)
	return strings.TrimSuffix(key, "|")
}
