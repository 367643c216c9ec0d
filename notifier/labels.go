package notifier

import "fmt"

// UseCaseLabels names the seeded use cases in notifications.
var UseCaseLabels = map[int]string{
	1: "Vault-Tec Corporation [Secrecy-Driven]",
	2: "RobCo Industries [Speed-Driven]",
	3: "General Atomics International [Assurance-Driven]",
	4: "West Tek Research [Preservation-Driven]",
	5: "Poseidon Energy [Resilience-Driven]",
	6: "Nuka-Cola Corporation [Flexibility-Driven]",
}

func useCaseLabel(id int) string {
	if label, ok := UseCaseLabels[id]; ok {
		return label
	}
	return fmt.Sprintf("Use Case %d", id)
}
