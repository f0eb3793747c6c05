// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package values

import "time"

// DateLayout renders as dd/mm/yyyy hh:mm:ss.
const DateLayout = "02/01/2006 15:04:05"

// FormatDate renders the given instant in local time.
func FormatDate(instant time.Time) string {
	return instant.Local().Format(DateLayout)
}
