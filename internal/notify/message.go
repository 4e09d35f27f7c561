package notify

import (
	"fmt"
	"go-gin-flight-booking/internal/model"
)

const (
	ConfirmationSubject = "Reservation Confirmation"

	// e.g. "Monday, January 02, 2006 at 03:04 PM"
	emailTimeLayout = "Monday, January 02, 2006 at 03:04 PM"
)

const confirmationTemplate = `Dear %s,

Thank you for reserving your seat with us! We're excited to have you aboard. Below are the details of your reservation:

Flight Number: %s
Departure Location: %s
Destination: %s
Departure Time: %s
Arrival Time: %s

Your reservation code is: %s

Please keep this code for future reference. If you need to make any changes or require further assistance, feel free to contact our support team.

We look forward to welcoming you on board and wish you a pleasant journey!

Best regards,
`

// ComposeConfirmation 組出確認信的主旨與內文
func ComposeConfirmation(n *model.ReservationNotification) (subject, body string) {
	body = fmt.Sprintf(confirmationTemplate,
		n.PassengerName,
		n.FlightNumber,
		n.Departure,
		n.Destination,
		n.DepartureTime.Format(emailTimeLayout),
		n.ArrivalTime.Format(emailTimeLayout),
		n.ReservationCode,
	)
	return ConfirmationSubject, body
}
