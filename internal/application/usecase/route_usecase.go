package usecase

import "context"

// RouteInfo datos para la vista de mapa: dirección legible de la posición
// actual y polilínea de conducción hacia el destino (pares [lng, lat]).
type RouteInfo struct {
	CurrentAddress string
	Route          [][2]float64
}

// RouteInfo resuelve los datos de mapa de un paquete. La dirección usa el
// centinela del proveedor como respaldo; la ruta queda vacía si falta
// cualquiera de las dos ubicaciones o el proveedor no encuentra trayecto.
// Los fallos del proveedor degradan la respuesta, nunca la abortan.
func (uc *PackageUseCase) RouteInfo(ctx context.Context, trackingNumber string) (*RouteInfo, error) {
	pkg, err := uc.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	info := &RouteInfo{Route: [][2]float64{}}

	if pkg.CurrentLocation != nil {
		addr, err := uc.geo.ReverseGeocode(ctx, pkg.CurrentLocation.Lat, pkg.CurrentLocation.Lng)
		if err != nil {
			uc.log.Warn().Err(err).Str("trackingNumber", trackingNumber).Msg("geocodificación inversa fallida")
			addr = "Error retrieving address"
		}
		info.CurrentAddress = addr
	}

	if pkg.CurrentLocation != nil && pkg.DestinationLocation != nil {
		route, err := uc.geo.Route(ctx, *pkg.CurrentLocation, *pkg.DestinationLocation)
		if err != nil {
			uc.log.Warn().Err(err).Str("trackingNumber", trackingNumber).Msg("consulta de ruta fallida")
		} else {
			info.Route = route
		}
	}

	return info, nil
}
