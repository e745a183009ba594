// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/internal/swiss/cmd/record"
)

func Record() *cobra.Command {
	cmd := cobra.Command{
		Use:   "record",
		Short: "Record the result of a board of the current round",
	}

	cmd.AddCommand(record.Match())
	cmd.AddCommand(record.Forfeit())
	return &cmd
}
