/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package message

// Transaction is an instruction together with the data messages that follow
// it on the bus. Reads carry no data.
type Transaction struct {
	Instruction
	Data []uint64 `json:"data,omitempty"`
}

// Parse regroups a message sequence produced by the transaction builders.
// Every write instruction is followed by NumTransactions data messages,
// every read instruction stands alone.
func (f Format) Parse(msgs []Message) ([]Transaction, error) {
	var result []Transaction
	for i := 0; i < len(msgs); {
		in, err := f.DecodeInstruction(msgs[i])
		if err != nil {
			return nil, err
		}
		i++
		tr := Transaction{Instruction: in}
		if !in.Read {
			if uint64(len(msgs)-i) < in.NumTransactions {
				return nil, ErrTruncated{Index: i - 1, Want: in.NumTransactions, Got: len(msgs) - i}
			}
			for n := uint64(0); n < in.NumTransactions; n++ {
				v, err := f.DecodeData(msgs[i])
				if err != nil {
					return nil, err
				}
				tr.Data = append(tr.Data, v)
				i++
			}
		}
		result = append(result, tr)
	}
	return result, nil
}
