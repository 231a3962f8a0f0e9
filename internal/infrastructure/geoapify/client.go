// Package geoapify implementa el cliente HTTP del proveedor de
// geocodificación y ruteo (Geoapify). Tres operaciones, una llamada HTTP
// cada una, sin reintentos ni caché.
package geoapify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/pkg/config"
)

// AddressNotFound es el valor centinela que devuelve ReverseGeocode cuando el
// proveedor no tiene una dirección para las coordenadas. No es un error: los
// llamadores lo usan como texto de respaldo en pantalla.
const AddressNotFound = "Address not found"

// ErrNoResults indica que la geocodificación directa no produjo resultados
// para la dirección dada.
var ErrNoResults = errors.New("geoapify: sin resultados para la dirección")

// ProviderError indica una respuesta HTTP no exitosa del proveedor.
type ProviderError struct {
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("geoapify: estado HTTP inesperado %d", e.StatusCode)
}

// Client cliente del API de Geoapify. Adaptador puro de I/O, sin estado.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient construye el cliente a partir de la configuración.
func NewClient(cfg config.GeoConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.geoapify.com"
	}
	return &Client{
		httpClient: &http.Client{},
		apiKey:     cfg.APIKey,
		baseURL:    base,
	}
}

// ForwardGeocode resuelve una dirección de texto a coordenadas usando
// /v1/geocode/search. Devuelve ErrNoResults si el proveedor no encuentra
// nada y *ProviderError en estados HTTP no exitosos.
func (c *Client) ForwardGeocode(ctx context.Context, address string) (*entity.GeoPoint, error) {
	q := url.Values{}
	q.Set("text", address)
	q.Set("lang", "en")
	q.Set("limit", "5")
	q.Set("format", "json")
	q.Set("apiKey", c.apiKey)

	var decoded struct {
		Results []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/v1/geocode/search", q, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Results) == 0 {
		return nil, ErrNoResults
	}
	return &entity.GeoPoint{Lat: decoded.Results[0].Lat, Lng: decoded.Results[0].Lon}, nil
}

// ReverseGeocode resuelve coordenadas a una dirección legible usando
// /v1/geocode/reverse. Cuando el proveedor no devuelve features responde el
// centinela AddressNotFound con error nil.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("apiKey", c.apiKey)

	var decoded struct {
		Features []struct {
			Properties struct {
				Formatted string `json:"formatted"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := c.get(ctx, "/v1/geocode/reverse", q, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Features) == 0 || decoded.Features[0].Properties.Formatted == "" {
		return AddressNotFound, nil
	}
	return decoded.Features[0].Properties.Formatted, nil
}

// Route obtiene la polilínea de conducción entre dos puntos usando
// /v1/routing. La geometría del proveedor es un MultiLineString; se extrae
// solo la primera línea, descartando segmentos alternos. Sin ruta devuelve
// una secuencia vacía con error nil. Cada par es [lng, lat].
func (c *Client) Route(ctx context.Context, start, end entity.GeoPoint) ([][2]float64, error) {
	q := url.Values{}
	q.Set("waypoints", fmt.Sprintf("%v,%v|%v,%v", start.Lat, start.Lng, end.Lat, end.Lng))
	q.Set("mode", "drive")
	q.Set("apiKey", c.apiKey)

	var decoded struct {
		Features []struct {
			Geometry struct {
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := c.get(ctx, "/v1/routing", q, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Features) == 0 || len(decoded.Features[0].Geometry.Coordinates) == 0 {
		return [][2]float64{}, nil
	}
	return decoded.Features[0].Geometry.Coordinates[0], nil
}

// get ejecuta un GET y decodifica la respuesta JSON en out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
