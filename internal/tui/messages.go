package tui

import (
	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/service"
)

// screenMsg tags a command result with the screen it was started on. Results
// for a screen the user already left are dropped.
type screenMsg struct {
	seq int
	msg any
}

type statusMsg string

type errMsg struct{ error }

type codeSentMsg struct{ phone string }

type codeResentMsg struct{}

type verifiedMsg struct{ user *repository.User }

type resendTickMsg struct{ gen int }

type loadingDoneMsg struct{}

type summaryMsg service.Summary

type itemSavedMsg struct {
	item    repository.Item
	similar []repository.Item
}

type templateWrittenMsg struct{ path string }

type previewMsg service.Preview

type committedMsg service.CommitResult

type libraryMsg []repository.Item

type detailMsg struct {
	item    repository.Item
	history []service.AssignmentLine
}

type statusChangedMsg struct{ item repository.Item }

type deletedMsg struct{ name string }

type assignDataMsg struct {
	item     repository.Item
	free     int
	projects []repository.Project
}

type projectCreatedMsg struct{ project repository.Project }

type assignedMsg struct {
	item    string
	project string
	qty     int
}

type reportMsg service.Report

type itemReportMsg service.ItemReport

type exportedMsg struct{ path string }

type resetDoneMsg struct{}
