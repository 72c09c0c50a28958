package view

import "resume-web/internal/modal"

func modalFixture() modal.Dialog {
	return modal.Build("Confirm Delete", ConfirmBody(Confirm{Question: "Are you sure you want to delete this user?"}), CloseActions())
}
