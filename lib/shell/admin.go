// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// captions are the prompt texts for each student field, keyed by field
// name. Registration prompts "ENTER <caption>: ", the update menu
// offers "UPDATE <caption>".
var captions = map[string]string{
	"name":           "STUDENT NAME",
	"parent_name":    "FATHER / PARENT NAME",
	"mother_name":    "MOTHER NAME",
	"phone":          "PHONE NUMBER",
	"email":          "EMAIL ID",
	"room_no":        "ROOM NUMBER",
	"blood_group":    "BLOOD GROUP",
	"year":           "YEAR (I / II / III / IV)",
	"dept":           "DEPARTMENT",
	"campus":         "CAMPUS",
	"district":       "DISTRICT",
	"state":          "STATE",
	"pincode":        "PINCODE",
	"address":        "FULL ADDRESS",
	"guardian_name":  "GUARDIAN NAME",
	"guardian_phone": "GUARDIAN PHONE",
	"dob":            "DATE OF BIRTH (DD/MM/YYYY)",
	"gender":         "GENDER",
	"block":          "HOSTEL BLOCK",
	"admission_year": "ADMISSION YEAR",
	"fee_status":     "FEE STATUS (PAID / NOT_PAID)",
}

var categoryTitles = map[schema.Category]string{
	schema.CategoryBasic:    "BASIC INFO (NAME, PARENT NAMES)",
	schema.CategoryContact:  "CONTACT INFO (PHONE, EMAIL, ADDRESS)",
	schema.CategoryAcademic: "ACADEMIC INFO (YEAR, DEPARTMENT, CAMPUS)",
	schema.CategoryHostel:   "HOSTEL INFO (ROOM, BLOCK)",
	schema.CategoryPersonal: "PERSONAL INFO (BLOOD GROUP, DOB, GENDER)",
	schema.CategoryFee:      "FEE DETAILS",
}

func caption(field schema.Field) string {
	if text, ok := captions[field.Name]; ok {
		return text
	}
	return field.Label
}

func (s *Shell) adminMenu(ctx context.Context) error {
	actions := map[int]func() error{
		1:  s.addStudent,
		2:  s.updateStudent,
		3:  s.deleteStudent,
		4:  s.viewAllStudents,
		5:  s.viewActiveStudents,
		6:  s.searchByID,
		7:  s.searchByName,
		8:  s.sortByName,
		9:  s.sortByRoom,
		10: s.viewByCampus,
		11: s.dashboard,
		12: s.exportReport,
		13: func() error { return s.raiseIssue("RAISE ISSUE - ADMIN SIDE", "ENTER STUDENT ID: ", "ENTER ISSUE DETAILS: ") },
		14: s.viewAllTickets,
		15: s.viewOpenTickets,
		16: s.updateTicketStatus,
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu("              ADMIN MAIN MENU",
			"1. ADD NEW STUDENT",
			"2. UPDATE STUDENT DETAILS",
			"3. DELETE (SOFT DELETE) STUDENT",
			"4. VIEW ALL STUDENTS (INCLUDING INACTIVE)",
			"5. VIEW ONLY ACTIVE STUDENTS",
			"6. SEARCH STUDENT BY ID",
			"7. SEARCH STUDENT BY NAME",
			"8. SORT STUDENTS BY NAME",
			"9. SORT STUDENTS BY ROOM NUMBER",
			"10. VIEW STUDENTS BY CAMPUS",
			"11. DASHBOARD SUMMARY",
			"12. EXPORT STUDENT REPORT TO FILE",
			"13. RAISE ISSUE (ADMIN SIDE)",
			"14. VIEW ALL ISSUES",
			"15. VIEW ONLY OPEN ISSUES",
			"16. UPDATE ISSUE STATUS",
			"0. LOGOUT AND RETURN TO MAIN MENU",
		)
		choice, err := s.readInt("ENTER YOUR CHOICE: ")
		if err != nil {
			return err
		}

		if choice == 0 {
			s.info("LOGGING OUT OF ADMIN PANEL...")
			s.flush()
			return nil
		}
		action, ok := actions[choice]
		if !ok {
			s.fail("INVALID CHOICE. PLEASE TRY AGAIN.")
		} else if err := action(); err != nil {
			return err
		}
		s.flush()
	}
}

func (s *Shell) addStudent() error {
	students := s.registry.Students
	if students.Len() >= students.Capacity() {
		s.fail("STUDENT LIMIT REACHED. CANNOT ADD MORE.")
		return nil
	}

	s.heading("ADDING NEW STUDENT", true)
	id, err := s.readID("ENTER UNIQUE STUDENT ID / ROLL NO: ")
	if err != nil {
		return err
	}
	if _, exists := students.Get(id); exists {
		s.fail("STUDENT WITH THIS ID ALREADY EXISTS. DUPLICATES NOT ALLOWED.")
		return nil
	}

	student := schema.Student{ID: id}
	for _, field := range schema.Fields {
		value, err := s.readString("ENTER " + caption(field) + ": ")
		if err != nil {
			return err
		}
		field.Set(&student, value)
	}

	if _, err := students.Register(student); err != nil {
		s.failErr(err)
		return nil
	}
	s.logger.Info("student registered", "student_id", id)
	s.success("STUDENT ADDED SUCCESSFULLY.")
	return nil
}

func (s *Shell) updateStudent() error {
	s.heading("UPDATE STUDENT DETAILS", true)
	id, err := s.readID("ENTER STUDENT ID TO UPDATE: ")
	if err != nil {
		return err
	}
	if _, exists := s.registry.Students.Get(id); !exists {
		s.fail("STUDENT NOT FOUND.")
		return nil
	}

	s.printf("\nSELECT WHICH DETAIL TO UPDATE (NESTED MENU):\n")
	for index, category := range schema.Categories {
		s.printf("%d. %s\n", index+1, categoryTitles[category])
	}
	s.println("0. CANCEL")
	choice, err := s.readInt("ENTER CHOICE: ")
	if err != nil {
		return err
	}
	if choice == 0 {
		s.info("UPDATE CANCELLED.")
		return nil
	}
	if choice < 1 || choice > len(schema.Categories) {
		s.fail("INVALID MAIN OPTION.")
		return nil
	}
	category := schema.Categories[choice-1]

	fields := schema.CategoryFields(category)
	option := 1
	if len(fields) > 1 {
		s.println("")
		for index, field := range fields {
			s.printf("%d. UPDATE %s\n", index+1, caption(field))
		}
		s.println("0. BACK")
		option, err = s.readInt("ENTER OPTION: ")
		if err != nil {
			return err
		}
		if option == 0 {
			s.info("NO CHANGE MADE.")
			return nil
		}
	}
	field, ok := schema.Select(category, option)
	if !ok {
		s.fail("INVALID OPTION.")
		return nil
	}

	value, err := s.readString("ENTER NEW " + caption(field) + ": ")
	if err != nil {
		return err
	}
	if _, _, err := s.registry.Students.UpdateSelected(id, category, option, value); err != nil {
		s.failErr(err)
		return nil
	}
	s.logger.Info("student updated", "student_id", id, "field", field.Name)
	s.success("STUDENT DETAILS UPDATED SUCCESSFULLY.")
	return nil
}

func (s *Shell) deleteStudent() error {
	s.heading("DELETE (SOFT) STUDENT", true)
	id, err := s.readID("ENTER STUDENT ID TO DELETE: ")
	if err != nil {
		return err
	}
	if err := s.registry.Students.SoftDelete(id); err != nil {
		s.fail("STUDENT NOT FOUND.")
		return nil
	}
	s.logger.Info("student deactivated", "student_id", id)
	s.success("STUDENT MARKED AS INACTIVE (SOFT DELETED).")
	return nil
}

func (s *Shell) viewAllStudents() error {
	if s.registry.Students.Len() == 0 {
		s.info("NO STUDENTS IN DATABASE.")
		return nil
	}
	s.heading("ALL STUDENTS (ACTIVE + INACTIVE)", false)
	s.studentTable(s.registry.Students.All())
	return nil
}

func (s *Shell) viewActiveStudents() error {
	s.heading("ACTIVE STUDENTS ONLY", false)
	if s.studentTable(s.registry.Students.Active()) == 0 {
		s.info("NO ACTIVE STUDENTS FOUND.")
	}
	return nil
}

func (s *Shell) searchByID() error {
	s.heading("SEARCH STUDENT BY ID", false)
	id, err := s.readID("ENTER STUDENT ID: ")
	if err != nil {
		return err
	}
	student, ok := s.registry.Students.Get(id)
	if !ok {
		s.fail("STUDENT NOT FOUND.")
		return nil
	}
	s.studentTable(func(yield func(schema.Student) bool) { yield(student) })
	return nil
}

func (s *Shell) searchByName() error {
	s.heading("SEARCH STUDENT BY NAME", false)
	text, err := s.readString("ENTER NAME (FULL OR PART): ")
	if err != nil {
		return err
	}
	if s.studentTable(s.registry.Students.SearchName(text)) == 0 {
		s.info("NO STUDENT MATCHING THIS NAME.")
	}
	return nil
}

func (s *Shell) sortByName() error {
	if !s.registry.Students.SortByName() {
		s.info("NOT ENOUGH STUDENTS TO SORT.")
		return nil
	}
	s.success("STUDENTS SORTED BY NAME.")
	return s.viewAllStudents()
}

func (s *Shell) sortByRoom() error {
	if !s.registry.Students.SortByRoom() {
		s.info("NOT ENOUGH STUDENTS TO SORT.")
		return nil
	}
	s.success("STUDENTS SORTED BY ROOM NUMBER.")
	return s.viewAllStudents()
}

func (s *Shell) viewByCampus() error {
	campus, err := s.readString("ENTER CAMPUS: ")
	if err != nil {
		return err
	}
	s.heading("STUDENTS IN CAMPUS: "+campus, false)
	if s.studentTable(s.registry.Students.FilterCampus(campus)) == 0 {
		s.info("NO STUDENTS FOUND FOR THIS CAMPUS.")
	}
	return nil
}

func (s *Shell) dashboard() error {
	s.dashboardLines(s.session.Dashboard(), s.session.Campuses())
	return nil
}

func (s *Shell) exportReport() error {
	path, err := s.session.WriteReport("", query.FormatText)
	if err != nil {
		s.fail("UNABLE TO CREATE REPORT FILE.")
		return nil
	}
	s.success("STUDENT REPORT EXPORTED TO FILE: " + path)
	return nil
}

// raiseIssue is shared by the admin menu and the student portal, which
// differ only in wording.
func (s *Shell) raiseIssue(title, idPrompt, issuePrompt string) error {
	tickets := s.registry.Tickets
	if tickets.Len() >= tickets.Capacity() {
		s.fail("TICKET LIMIT REACHED. CANNOT RAISE MORE ISSUES.")
		return nil
	}

	s.heading(title, false)
	id, err := s.readID(idPrompt)
	if err != nil {
		return err
	}
	if student, ok := s.registry.Students.Get(id); !ok || !student.Active {
		s.fail("STUDENT NOT REGISTERED OR INACTIVE. ISSUE CANNOT BE RAISED.")
		return nil
	}

	issue, err := s.readString(issuePrompt)
	if err != nil {
		return err
	}
	ticket, err := s.registry.RaiseTicket(id, issue)
	if err != nil {
		s.failErr(err)
		return nil
	}
	s.logger.Info("ticket raised", "ticket_id", ticket.ID, "student_id", id)
	s.success("ISSUE RAISED SUCCESSFULLY.")
	s.printf("YOUR TICKET ID IS: %d\n", ticket.ID)
	return nil
}

func (s *Shell) viewAllTickets() error {
	if s.registry.Tickets.Len() == 0 {
		s.info("NO ISSUES RAISED YET.")
		return nil
	}
	s.heading("ALL ISSUES / TICKETS", false)
	s.ticketTable(s.registry.Tickets.All())
	return nil
}

func (s *Shell) viewOpenTickets() error {
	s.heading("OPEN ISSUES ONLY", false)
	if s.ticketTable(s.registry.Tickets.Open()) == 0 {
		s.info("NO OPEN ISSUES.")
	}
	return nil
}

func (s *Shell) updateTicketStatus() error {
	s.heading("UPDATE ISSUE STATUS (ADMIN ONLY)", false)
	id, err := s.readID("ENTER TICKET ID: ")
	if err != nil {
		return err
	}
	ticket, ok := s.registry.Tickets.Get(id)
	if !ok {
		s.fail("TICKET NOT FOUND.")
		return nil
	}

	s.printf("\nCURRENT STATUS: %s\n", s.styles.status(ticket.Status).Render(string(ticket.Status)))
	for index, status := range schema.TicketStatuses {
		s.printf("%d. SET STATUS TO %s\n", index+1, status)
	}
	s.println("0. CANCEL")
	choice, err := s.readInt("ENTER CHOICE: ")
	if err != nil {
		return err
	}
	if choice == 0 {
		s.info("NO CHANGE MADE.")
		return nil
	}
	if choice < 1 || choice > len(schema.TicketStatuses) {
		s.fail("INVALID OPTION.")
		return nil
	}

	status := schema.TicketStatuses[choice-1]
	if err := s.registry.Tickets.SetStatus(id, status); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			s.fail("TICKET NOT FOUND.")
			return nil
		}
		return fmt.Errorf("updating ticket %d: %w", id, err)
	}
	s.logger.Info("ticket status changed", "ticket_id", id, "status", string(status))
	s.success("TICKET STATUS UPDATED SUCCESSFULLY.")
	return nil
}
