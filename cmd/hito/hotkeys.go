package main

import (
	"strings"

	"github.com/iomz/hito/types"
	"github.com/spf13/cobra"
)

func newHotkeysCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hotkeys",
		Aliases: []string{"hotkey"},
		Short:   "Manage keyboard shortcuts of the browser UI",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured hotkeys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				hotkeys, err := c.app.Store().Hotkeys()
				if err != nil {
					return WrapError("list hotkeys", err, CommonSuggestions.CheckStore)
				}
				return c.printHotkeys(hotkeys)
			},
		},
		newHotkeyAddCmd(c),
		newHotkeyUpdateCmd(c),
		&cobra.Command{
			Use:     "remove <id>",
			Aliases: []string{"rm"},
			Short:   "Remove a hotkey",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.Store().RemoveHotkey(args[0]); err != nil {
					return WrapError("remove hotkey", err)
				}
				return c.output.message(map[string]string{"removed": args[0]}, "Removed hotkey %s", args[0])
			},
		},
	)
	return cmd
}

func newHotkeyAddCmd(c *cli) *cobra.Command {
	var hotkey types.HotkeyData

	cmd := &cobra.Command{
		Use:   "add <key> <action>",
		Short: "Bind a key combination to an action",
		Example: `  hito hotkeys add k toggle_category_keep --modifier ctrl
  hito hotkeys add Delete trash_image`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkey.Key = args[0]
			hotkey.Action = args[1]
			added, err := c.app.Store().AddHotkey(hotkey)
			if err != nil {
				return WrapError("add hotkey", err)
			}
			return c.printHotkeys([]types.HotkeyData{added})
		},
	}

	cmd.Flags().StringSliceVarP(&hotkey.Modifiers, "modifier", "m", nil, "modifier keys (ctrl, alt, shift, meta)")
	cmd.Flags().StringVar(&hotkey.ID, "id", "", "hotkey id (default: generated)")
	return cmd
}

func newHotkeyUpdateCmd(c *cli) *cobra.Command {
	var (
		key, action string
		modifiers   []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the combination or action of a hotkey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeys, err := c.app.Store().Hotkeys()
			if err != nil {
				return WrapError("update hotkey", err)
			}

			var hotkey *types.HotkeyData
			for i := range hotkeys {
				if hotkeys[i].ID == args[0] {
					hotkey = &hotkeys[i]
				}
			}
			if hotkey == nil {
				return NewNotFoundError("update hotkey", "hotkey", args[0],
					"List configured hotkeys with 'hito hotkeys list'")
			}

			if cmd.Flags().Changed("key") {
				hotkey.Key = key
			}
			if cmd.Flags().Changed("action") {
				hotkey.Action = action
			}
			if cmd.Flags().Changed("modifier") {
				hotkey.Modifiers = modifiers
			}
			if err := c.app.Store().UpdateHotkey(*hotkey); err != nil {
				return WrapError("update hotkey", err)
			}
			return c.printHotkeys([]types.HotkeyData{*hotkey})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "new key")
	cmd.Flags().StringVar(&action, "action", "", "new action")
	cmd.Flags().StringSliceVarP(&modifiers, "modifier", "m", nil, "new modifier keys")
	return cmd
}

func (c *cli) printHotkeys(hotkeys []types.HotkeyData) error {
	return c.output.render(hotkeys, func(t *tableWriter) {
		t.header("id", "key", "modifiers", "action")
		for _, h := range hotkeys {
			t.row(h.ID, h.Key, strings.Join(h.Modifiers, "+"), h.Action)
		}
	})
}
