package domain

import (
	"fmt"
	"math/rand"
	"strings"
)

// GenerateTrackingNumber deriva un número de seguimiento legible a partir de
// la descripción del paquete: la primera palabra en mayúsculas más un sufijo
// numérico aleatorio de 7 dígitos (rango [1000000, 9999999]).
//
// El generador no verifica unicidad: una colisión se manifiesta como
// violación de clave única al persistir (ErrDuplicateTracking).
func GenerateTrackingNumber(description string) string {
	prefix := "PKG"
	if fields := strings.Fields(description); len(fields) > 0 {
		prefix = strings.ToUpper(fields[0])
	}
	suffix := 1000000 + rand.Intn(9000000)
	return fmt.Sprintf("%s-%d", prefix, suffix)
}
