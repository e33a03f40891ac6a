package notifications

import (
	"fmt"
	"strings"

	"github.com/talentstack/cvintake/interfaces"
)

func decisionSubject(accepted bool) string {
	if accepted {
		return "Wynik rekrutacji: zaproszenie / Recruitment result: invitation"
	}
	return "Wynik rekrutacji / Recruitment result"
}

func decisionBody(n interfaces.DecisionNotification) string {
	var b strings.Builder

	if n.Accepted {
		b.WriteString("Dzień dobry,\n\n")
		fmt.Fprintf(&b, "Z przyjemnością informujemy, że Państwa zgłoszenie na stanowisko %s zostało rozpatrzone pozytywnie.\n", n.Position)
		if n.MeetingDetails != "" {
			fmt.Fprintf(&b, "Szczegóły spotkania: %s\n", n.MeetingDetails)
		}
		b.WriteString("\n---\n\n")
		b.WriteString("Hello,\n\n")
		fmt.Fprintf(&b, "We are pleased to inform you that your application for the %s position has been accepted.\n", n.Position)
		if n.MeetingDetails != "" {
			fmt.Fprintf(&b, "Meeting details: %s\n", n.MeetingDetails)
		}
	} else {
		b.WriteString("Dzień dobry,\n\n")
		fmt.Fprintf(&b, "Dziękujemy za zgłoszenie na stanowisko %s. Niestety tym razem zdecydowaliśmy się nie kontynuować procesu rekrutacji.\n", n.Position)
		if n.Reason != "" {
			fmt.Fprintf(&b, "Uzasadnienie: %s\n", n.Reason)
		}
		b.WriteString("\n---\n\n")
		b.WriteString("Hello,\n\n")
		fmt.Fprintf(&b, "Thank you for applying for the %s position. Unfortunately we have decided not to move forward with your application at this time.\n", n.Position)
		if n.Reason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", n.Reason)
		}
	}

	b.WriteString("\nZ poważaniem / Best regards,\nZespół rekrutacji / Recruitment team\n")
	return b.String()
}
