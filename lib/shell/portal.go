// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "context"

func (s *Shell) studentPortal(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu("           STUDENT ISSUE PORTAL",
			"1. RAISE NEW ISSUE",
			"2. CHECK ISSUE STATUS",
			"3. VIEW MY ISSUES",
			"0. BACK TO MAIN MENU",
		)
		choice, err := s.readInt("ENTER YOUR CHOICE: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.raiseIssue("RAISE ISSUE - STUDENT PORTAL", "ENTER YOUR STUDENT ID: ", "ENTER YOUR ISSUE (ROOM / HOSTEL PROBLEM): ")
		case 2:
			err = s.checkIssueStatus()
		case 3:
			err = s.myIssues()
		case 0:
			s.info("RETURNING TO MAIN MENU...")
			s.flush()
			return nil
		default:
			s.fail("INVALID CHOICE. TRY AGAIN.")
		}
		if err != nil {
			return err
		}
		s.flush()
	}
}

func (s *Shell) checkIssueStatus() error {
	s.heading("CHECK ISSUE STATUS", false)
	id, err := s.readID("ENTER YOUR TICKET ID: ")
	if err != nil {
		return err
	}
	ticket, ok := s.registry.Tickets.Get(id)
	if !ok {
		s.fail("NO SUCH TICKET FOUND.")
		return nil
	}
	s.ticketDetails(ticket)
	return nil
}

func (s *Shell) myIssues() error {
	s.heading("MY ISSUES", false)
	id, err := s.readID("ENTER YOUR STUDENT ID: ")
	if err != nil {
		return err
	}
	if _, ok := s.registry.Students.Get(id); !ok {
		s.fail("STUDENT NOT REGISTERED.")
		return nil
	}
	if s.ticketTable(s.registry.Tickets.ForStudent(id)) == 0 {
		s.info("NO ISSUES FOUND FOR THIS STUDENT.")
	}
	return nil
}
