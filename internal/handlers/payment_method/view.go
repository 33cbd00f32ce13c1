package payment_method

import (
	"github.com/kevin07696/card-wallet/internal/services/ports"
	"github.com/kevin07696/card-wallet/internal/validation"
)

type methodView struct {
	ID         string
	Issuer     string
	Masked     string
	ExpiryDate string
	Active     bool
}

type formView struct {
	Visible     bool
	CardDetails string
	ExpiryDate  string
	CVV         string
	Issuer      string
	CardError   string
	ExpiryError string
	CVVError    string
}

type pageView struct {
	Methods []methodView
	Form    formView
	Notice  string
	Err     string
	Loaded  bool
}

func newPageView(state ports.PaymentMethodState, form ports.CardFormSnapshot) pageView {
	methods := make([]methodView, 0, len(state.Methods))
	for _, pm := range state.Methods {
		methods = append(methods, methodView{
			ID:         pm.ID,
			Issuer:     pm.Issuer,
			Masked:     pm.Masked(),
			ExpiryDate: pm.ExpiryDate,
			Active:     pm.Active,
		})
	}

	return pageView{
		Methods: methods,
		Form: formView{
			Visible:     form.Visible,
			CardDetails: form.Draft.CardDetails,
			ExpiryDate:  form.Draft.ExpiryDate,
			CVV:         form.Draft.CVV,
			Issuer:      form.Draft.Issuer,
			CardError:   form.Errors[validation.FieldCardDetails],
			ExpiryError: form.Errors[validation.FieldExpiryDate],
			CVVError:    form.Errors[validation.FieldCVV],
		},
		Notice: state.Notice,
		Err:    state.Err,
		Loaded: state.Loaded,
	}
}
