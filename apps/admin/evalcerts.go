package main

import (
	"fmt"
)

func (cli *commandLine) evalCerts(studentID string) error {
	awards, err := cli.certSvc.EvaluateStudent(studentID)
	if err != nil {
		return err
	}

	if len(awards) == 0 {
		fmt.Printf("student %s: no certificates earned\n", studentID)
		return nil
	}
	for _, award := range awards {
		fmt.Printf("student %s: awarded %q (period %s - %s) %v\n",
			studentID, award.Type,
			award.PeriodStart.Format("2006-01-02"), award.PeriodEnd.Format("2006-01-02"),
			award.Details,
		)
	}
	return nil
}
