package app

// command is a user-level operation reachable from menus, shortcuts and
// the splash screen.
type command int

const (
	cmdNone command = iota
	cmdNewFile
	cmdNewFolder
	cmdNew
	cmdOpen
	cmdOpenFolder
	cmdSave
	cmdSaveAs
	cmdQuit
	cmdUndo
	cmdRedo
	cmdCut
	cmdCopy
	cmdPaste
	cmdSelectAll
	cmdToggleVim
	cmdToggleLineNumbers
	cmdToggleExplorer
	cmdNextTheme
	cmdAbout
	cmdRename
	cmdDelete
)
