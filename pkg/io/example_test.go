package io_test

import (
	"fmt"
	"os"
	"strings"

	lmio "github.com/matzehuels/lmgraph/pkg/io"
)

func ExampleRead() {
	const desc = `
[[variables]]
name = "door"
values = ["open", "closed"]

[[variables]]
name = "robot"
values = ["in hall", "in kitchen", "in garden"]

[[landmarks]]
name = "open"
facts = [[0, 0]]

[[landmarks]]
name = "outside"
kind = "disjunctive"
facts = [[1, 1], [1, 2]]

[[orderings]]
from = "open"
to = "outside"
type = "necessary"
`
	l, err := lmio.Read(strings.NewReader(desc), lmio.FormatTOML)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := lmio.WriteJSON(l.Graph, l.Variables, os.Stdout); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// {
	//   "elements": {
	//     "nodes": [
	//       {
	//         "data": {
	//           "id": "0",
	//           "name": "open",
	//           "scc_id": 0
	//         }
	//       },
	//       {
	//         "data": {
	//           "id": "1",
	//           "name": "in kitchen | in garden",
	//           "scc_id": 1
	//         }
	//       }
	//     ],
	//     "edges": [
	//       {
	//         "data": {
	//           "id": "0_1",
	//           "source": "0",
	//           "target": "1",
	//           "type": 3
	//         }
	//       }
	//     ]
	//   },
	//   "metadata": {
	//     "num_landmarks": 2,
	//     "num_sccs": 2,
	//     "num_conjunctive_landmarks": 0,
	//     "num_disjunctive_landmarks": 1
	//   }
	// }
}
