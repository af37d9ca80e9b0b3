package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Tipos de propiedad que maneja el backend
const (
	PropertyTypeHouse     = "House"
	PropertyTypeApartment = "Apartment"
	PropertyTypeLand      = "Land"
	PropertyTypeOffice    = "Office"
)

// Operación: venta o arriendo
const (
	OperationSale = "Sale"
	OperationRent = "Rent"
)

// Estado de la propiedad
const (
	StateNew  = "New"
	StateUsed = "Used"
)

// Monedas soportadas
const (
	CurrencyCLP = "CLP"
	CurrencyUSD = "USD"
	CurrencyUF  = "UF"
)

// Property representa una propiedad publicada en el backend.
// El backend es el único que crea y muta propiedades; este servicio
// solo las lee (y reenvía borradores desde el panel de administración).
type Property struct {
	ID              FlexID          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	PropertyType    string          `json:"property_type"`
	Operation       string          `json:"operation"`
	State           string          `json:"state,omitempty"`
	Price           PriceValue      `json:"price"`
	Currency        string          `json:"currency"`
	PriceType       string          `json:"price_type,omitempty"`
	Bedrooms        *int            `json:"bedrooms,omitempty"`
	Bathrooms       *int            `json:"bathrooms,omitempty"`
	Parking         *int            `json:"parking,omitempty"`
	BuiltArea       *float64        `json:"built_area,omitempty"`
	LandArea        *float64        `json:"land_area,omitempty"`
	Storage         bool            `json:"storage,omitempty"`
	Region          string          `json:"region,omitempty"`
	Commune         string          `json:"commune,omitempty"`
	Address         string          `json:"address,omitempty"`
	LocationLabel   string          `json:"location,omitempty"`
	ShowMap         bool            `json:"show_map,omitempty"`
	MapSrc          string          `json:"map_src,omitempty"`
	Images          []PropertyImage `json:"images,omitempty"`
	Videos          []PropertyVideo `json:"videos,omitempty"`
	Published       bool            `json:"published"`
	Featured        bool            `json:"featured"`
	Amenities       string          `json:"amenities,omitempty"`
	Characteristics string          `json:"characteristics,omitempty"`
	Water           string          `json:"water,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PropertyImage es una imagen de la galería. El orden importa:
// la primera imagen es la portada salvo que alguna tenga is_cover.
type PropertyImage struct {
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	IsCover  bool   `json:"is_cover,omitempty"`
	Position int    `json:"position,omitempty"`
}

// PropertyVideo es una referencia a video (YouTube, etc.)
type PropertyVideo struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Location retorna la etiqueta canónica de ubicación.
// Si el backend envía el campo plano "location" se usa ese;
// si no, se construye como "región, comuna".
func (p Property) Location() string {
	if p.LocationLabel != "" {
		return p.LocationLabel
	}
	if p.Region == "" && p.Commune == "" {
		return ""
	}
	if p.Commune == "" {
		return p.Region
	}
	if p.Region == "" {
		return p.Commune
	}
	return p.Region + ", " + p.Commune
}

// CoverImage retorna la imagen de portada: la marcada con is_cover
// o, en su defecto, la primera de la galería.
func (p Property) CoverImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsCover {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// HasImages indica si la propiedad tiene al menos una imagen
func (p Property) HasImages() bool {
	return len(p.Images) > 0
}

// FlexID acepta identificadores que el backend envía como string o como número
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	*id = FlexID(strings.TrimSpace(string(b)))
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id FlexID) String() string {
	return string(id)
}

var plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// PriceValue conserva el texto original del precio tal como lo envió
// el backend (número JSON o string con formato chileno). La
// normalización numérica vive en utils.NormalizePrice; acá solo se
// preserva el valor crudo para no perder información de formato.
type PriceValue string

func (p *PriceValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PriceValue(s)
		return nil
	}
	if string(b) == "null" {
		*p = ""
		return nil
	}
	*p = PriceValue(strings.TrimSpace(string(b)))
	return nil
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	// Los valores puramente numéricos se re-emiten como número JSON
	if plainNumber.MatchString(string(p)) {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

func (p PriceValue) String() string {
	return string(p)
}
