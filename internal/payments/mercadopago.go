package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/studiobelle/salon-scheduler/internal/models"
)

// MercadoPago cria preferências de pagamento para o sinal do
// agendamento. A captura em si acontece no checkout do Mercado Pago;
// aqui só montamos a preferência e devolvemos o link.
type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

// CreateDepositPreference retorna o init point do checkout do sinal.
func (m *MercadoPago) CreateDepositPreference(
	ctx context.Context,
	salon *models.Salon,
	service *models.Service,
	b *models.Booking,
) (string, error) {

	amount := service.Price * float64(salon.DepositPercent) / 100

	req := preference.Request{
		ExternalReference: b.Reference,
		Items: []preference.ItemRequest{
			{
				ID:        fmt.Sprintf("booking-%d", b.ID),
				Title:     fmt.Sprintf("Sinal - %s", service.Name),
				Quantity:  1,
				UnitPrice: amount,
			},
		},
	}

	resp, err := m.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resp.InitPoint, nil
}
