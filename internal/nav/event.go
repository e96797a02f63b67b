package nav

// Event requests a transition.
type Event interface{ event() }

// SubmitAuth is fired once the auth form validated and a code was sent.
type SubmitAuth struct{ Phone string }

// ConfirmCode is fired with the verification code the user entered.
type ConfirmCode struct{ Code string }

type Back struct{}

type LoadingDone struct{}

type RequestAddItem struct{}

type RequestBulkUpload struct{}

// Save leaves the add-item or bulk upload flow after a successful write.
type Save struct{}

type ViewItem struct{ ItemID int64 }

type RequestAssign struct{}

// ViewReport opens the report for the item on screen.
type ViewReport struct{}

// Navigate jumps to a root screen from anywhere behind the auth gate.
type Navigate struct{ Target Kind }

func (SubmitAuth) event()        {}
func (ConfirmCode) event()       {}
func (Back) event()              {}
func (LoadingDone) event()       {}
func (RequestAddItem) event()    {}
func (RequestBulkUpload) event() {}
func (Save) event()              {}
func (ViewItem) event()          {}
func (RequestAssign) event()     {}
func (ViewReport) event()        {}
func (Navigate) event()          {}
